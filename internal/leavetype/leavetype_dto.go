package leavetype

type CreateLeaveTypeRequest struct {
	Name          string `json:"name" binding:"required"`
	NumberOfDays  int    `json:"number_of_days" binding:"gte=0"`
	MultipleTimes bool   `json:"multiple_times"`
}

type UpdateLeaveTypeRequest struct {
	Name          string `json:"name" binding:"required"`
	NumberOfDays  int    `json:"number_of_days" binding:"gte=0"`
	MultipleTimes bool   `json:"multiple_times"`
}

type LeaveTypeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NumberOfDays  int    `json:"number_of_days"`
	MultipleTimes bool   `json:"multiple_times"`
}
