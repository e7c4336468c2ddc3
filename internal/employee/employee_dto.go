package employee

type RegisterEmployeeRequest struct {
	Username      string `json:"username" binding:"required,min=3,max=50"`
	Password      string `json:"password" binding:"required,min=8"`
	SurName       string `json:"sur_name" binding:"required"`
	FirstName     string `json:"first_name" binding:"required"`
	OtherName     string `json:"other_name"`
	Gender        string `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Designation   string `json:"designation"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	DOB           string `json:"dob"`
	DateFirstAppt string `json:"date_first_appt"`
	DateConfirmed string `json:"date_confirmed"`
	DepartmentID  string `json:"department_id" binding:"omitempty,uuid"`
	UnitID        string `json:"unit_id" binding:"omitempty,uuid"`

	IsHR       bool `json:"is_hr"`
	IsHOD      bool `json:"is_hod"`
	IsUnitHead bool `json:"is_unit_head"`
	IsManager  bool `json:"is_manager"`
}

type UpdateEmployeeRequest struct {
	SurName       string `json:"sur_name" binding:"required"`
	FirstName     string `json:"first_name" binding:"required"`
	OtherName     string `json:"other_name"`
	Gender        string `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
	Designation   string `json:"designation"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	DOB           string `json:"dob"`
	DateFirstAppt string `json:"date_first_appt"`
	DateConfirmed string `json:"date_confirmed"`
	DepartmentID  string `json:"department_id" binding:"omitempty,uuid"`
	UnitID        string `json:"unit_id" binding:"omitempty,uuid"`

	IsHR       *bool `json:"is_hr"`
	IsHOD      *bool `json:"is_hod"`
	IsUnitHead *bool `json:"is_unit_head"`
	IsManager  *bool `json:"is_manager"`
}

type ChangeStatusRequest struct {
	IsActive bool   `json:"is_active"`
	Reason   string `json:"reason" binding:"required"`
}

type ListEmployeesQuery struct {
	Search       string `form:"search"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	UnitID       string `form:"unit_id" binding:"omitempty,uuid"`
	ActiveOnly   bool   `form:"active_only"`
	Page         int    `form:"page,default=1" binding:"gte=1"`
	Limit        int    `form:"limit,default=20" binding:"gte=1,lte=100"`
}

type EmployeeResponse struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	SurName       string   `json:"sur_name"`
	FirstName     string   `json:"first_name"`
	OtherName     string   `json:"other_name,omitempty"`
	FullName      string   `json:"full_name"`
	Gender        string   `json:"gender,omitempty"`
	Designation   string   `json:"designation,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Email         string   `json:"email,omitempty"`
	DOB           string   `json:"dob,omitempty"`
	DateFirstAppt string   `json:"date_first_appt,omitempty"`
	DateConfirmed string   `json:"date_confirmed,omitempty"`
	DepartmentID  string   `json:"department_id,omitempty"`
	UnitID        string   `json:"unit_id,omitempty"`
	IsActive      bool     `json:"is_active"`
	Capabilities  []string `json:"capabilities"`
}
