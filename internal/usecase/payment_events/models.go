package payment_events

// Outcome результат обработки события
type Outcome string

const (
	OutcomeConfirmed Outcome = "confirmed" // бронирование подтверждено
	OutcomeCancelled Outcome = "cancelled" // бронирование отменено по истечении страницы оплаты
	OutcomeIgnored   Outcome = "ignored"   // событие не относится к бронированиям или уже обработано
)

// Response модель ответа на событие
type Response struct {
	EventID       string
	Outcome       Outcome
	ReservationID string
}
