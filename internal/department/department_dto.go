package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=CLINICAL NON-CLINICAL"`
}

type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required,oneof=CLINICAL NON-CLINICAL"`
}

type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}
