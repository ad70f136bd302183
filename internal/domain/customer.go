package domain

// CustomerStats накопленная статистика клиента
type CustomerStats struct {
	UserID        int64
	TotalBookings int
	TotalSpent    float64
}
