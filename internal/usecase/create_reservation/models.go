package create_reservation

// Request модель запроса на бронирование места
type Request struct {
	FormationID   string // ID формации
	SessionID     string // ID сессии
	CustomerName  string // Имя клиента
	CustomerEmail string // Email клиента
}

// TransferResponse ответ на бронирование с оплатой переводом
type TransferResponse struct {
	ReservationID string // ID созданного бронирования
	IBAN          string // Реквизиты для перевода
	Status        string // Статус бронирования (transfer_pending)
}

// CheckoutResponse ответ на бронирование с оплатой картой
type CheckoutResponse struct {
	ReservationID string // ID созданного бронирования
	URL           string // Адрес страницы оплаты
}
