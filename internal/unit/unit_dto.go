package unit

type CreateUnitRequest struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

type UpdateUnitRequest struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required,uuid"`
}

type UnitResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
}
