package models

// Metric значение за период и изменение к предыдущему, %
type Metric struct {
	Value    float64 `json:"value"`
	Previous float64 `json:"previous"`
	Change   float64 `json:"change"`
}

// StatsResponse ключевые показатели компании
type StatsResponse struct {
	BusinessID    int64  `json:"business_id"`
	Period        string `json:"period"`
	From          string `json:"from"`
	To            string `json:"to"`
	Revenue       Metric `json:"revenue"`
	Bookings      Metric `json:"bookings"`
	Confirmed     Metric `json:"confirmed"`
	Customers     Metric `json:"customers"`
	AverageRating Metric `json:"average_rating"`
}

// ChartPoint количество броней за день
type ChartPoint struct {
	Date      string `json:"date"`
	Confirmed int    `json:"confirmed"`
	Pending   int    `json:"pending"`
	Cancelled int    `json:"cancelled"`
	Total     int    `json:"total"`
}

// ChartResponse ряд по дням периода
type ChartResponse struct {
	BusinessID int64        `json:"business_id"`
	Period     string       `json:"period"`
	Points     []ChartPoint `json:"points"`
}
