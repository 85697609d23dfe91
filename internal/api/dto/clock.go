package dto

type ClockRequest struct {
	Hour   *int `json:"hour"`
	Minute *int `json:"minute"`
}

type ClockResponse struct {
	Accepted  bool   `json:"accepted"`
	TimeOfDay string `json:"time_of_day"`
}
