package get_month_availability

// Request модель запроса месячного представления доступности
type Request struct {
	Year                 int
	Month                int // 1-12
	TotalDurationMinutes int // Суммарная длительность корзины
}

// Response модель ответа: ISO-дата -> есть ли хотя бы один свободный слот
type Response struct {
	Year  int
	Month int
	Days  map[string]bool
}
