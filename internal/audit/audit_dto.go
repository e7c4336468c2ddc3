package audit

type ListLoginHistoryQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=success failed blocked"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page,default=1" binding:"gte=1"`
	Limit      int    `form:"limit,default=20" binding:"gte=1,lte=100"`
}

type LoginHistoryResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Username   string `json:"username"`
	Status     string `json:"status"`
	IPAddress  string `json:"ip_address,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
	DeviceType string `json:"device_type,omitempty"`
	Browser    string `json:"browser,omitempty"`
	OSType     string `json:"os_type,omitempty"`
	LoginTime  string `json:"login_time"`
}

type LoginStatisticsResponse struct {
	Total       int64            `json:"total"`
	Success     int64            `json:"success"`
	Failed      int64            `json:"failed"`
	Blocked     int64            `json:"blocked"`
	SuccessRate float64          `json:"success_rate"`
	FailureRate float64          `json:"failure_rate"`
	Devices     map[string]int64 `json:"devices"`
}

type ListStatusHistoryQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Change     string `form:"change" binding:"omitempty,oneof=ACTIVATED DEACTIVATED"`
	Page       int    `form:"page,default=1" binding:"gte=1"`
	Limit      int    `form:"limit,default=20" binding:"gte=1,lte=100"`
}

type StatusHistoryResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	StatusChange   string `json:"status_change"`
	Reason         string `json:"reason,omitempty"`
	ChangedBy      string `json:"changed_by"`
	CreatedAt      string `json:"created_at"`
}

type StatusStatisticsResponse struct {
	Total         int64 `json:"total"`
	Activations   int64 `json:"activations"`
	Deactivations int64 `json:"deactivations"`
}
