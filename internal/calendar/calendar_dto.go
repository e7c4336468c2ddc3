package calendar

type CreateHolidayRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description"`
}

type HolidayResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Year        int    `json:"year"`
	Description string `json:"description"`
}

type WorkingDaysResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
}

type EndDateResponse struct {
	StartDate   string `json:"start_date"`
	WorkingDays int    `json:"working_days"`
	EndDate     string `json:"end_date"`
}
