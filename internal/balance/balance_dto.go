package balance

type BalanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	LeaveTypeID   string `json:"leave_type_id"`
	Year          int    `json:"year"`
	TotalDays     int    `json:"total_days"`
	DaysUsed      int    `json:"days_used"`
	DaysRemaining int    `json:"days_remaining"`
}
