package leave

type SubmitLeaveRequest struct {
	LeaveTypeID    string `json:"leave_type_id" binding:"required,uuid"`
	StartDate      string `json:"start_date" binding:"required"`
	Days           int    `json:"days" binding:"required,gt=0"`
	DeductibleDays int    `json:"deductible_days" binding:"gte=0"`
	Reason         string `json:"reason" binding:"required,max=500"`
	LeaveLastTaken string `json:"leave_last_taken"`

	HomeAddress       string   `json:"home_address" binding:"max=255"`
	PlaceToSpendLeave string   `json:"place_to_spend_leave" binding:"max=255"`
	AltPhone          string   `json:"alt_phone" binding:"max=20"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
}

type EditLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	Reason    string `json:"reason" binding:"required,max=500"`
}

type DecideLeaveRequest struct {
	Approve bool `json:"approve"`
}

type ListLeavesQuery struct {
	EmployeeID   string `form:"employee_id" binding:"omitempty,uuid"`
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	UnitID       string `form:"unit_id" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled exhausted"`
	Year         int    `form:"year"`
	Search       string `form:"search"`
	Page         int    `form:"page,default=1" binding:"gte=1"`
	Limit        int    `form:"limit,default=20" binding:"gte=1,lte=100"`
}

type LeaveResponse struct {
	ID             string   `json:"id"`
	LeaveCode      string   `json:"leave_code"`
	EmployeeID     string   `json:"employee_id"`
	LeaveTypeID    string   `json:"leave_type_id"`
	DepartmentID   string   `json:"department_id,omitempty"`
	UnitID         string   `json:"unit_id,omitempty"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	DaysRequested  int      `json:"days_requested"`
	DeductibleDays int      `json:"deductible_days"`
	NetDays        int      `json:"net_days"`
	Year           int      `json:"year"`
	Reason         string   `json:"reason"`
	Status         string   `json:"status"`
	RecommendedBy  string   `json:"recommended_by,omitempty"`
	RecommendedAt  string   `json:"recommended_at,omitempty"`
	DecidedBy      string   `json:"decided_by,omitempty"`
	DecidedAt      string   `json:"decided_at,omitempty"`
	LeaveLastTaken string   `json:"leave_last_taken,omitempty"`
	HomeAddress    string   `json:"home_address,omitempty"`
	PlaceToSpend   string   `json:"place_to_spend_leave,omitempty"`
	AltPhone       string   `json:"alt_phone,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	CreatedAt      string   `json:"created_at"`

	// Recomputed from the stored dates on single-request reads; a
	// mismatch with net_days flags a data-quality problem, not an error.
	WorkingDays int `json:"working_days,omitempty"`
}
