package menuservice

// MenuItem позиция меню из MenuService
type MenuItem struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	IsBookable bool   `json:"is_bookable"` // Позицию можно бронировать (дегустация, банкетное меню и т.п.)
	IsActive   bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от MenuService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
