package handlers

import (
	"time"

	"github.com/m04kA/atelier-booking/internal/domain"
)

// ReservationResponse HTTP модель бронирования (общая для клиентских и админских ответов)
type ReservationResponse struct {
	ID                 string    `json:"id"`
	FormationID        string    `json:"formationId"`
	FormationTitle     string    `json:"formationTitle"`
	SessionID          string    `json:"sessionId"`
	SessionLabel       string    `json:"sessionLabel"`
	CustomerName       string    `json:"customerName"`
	CustomerEmail      string    `json:"customerEmail"`
	PaymentMethod      string    `json:"paymentMethod"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	SessionChangeCount int       `json:"sessionChangeCount"`
}

// ReservationFromDomain конвертирует доменное бронирование в HTTP модель.
// Внешний id платежной сессии наружу не отдается.
func ReservationFromDomain(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                 r.ID,
		FormationID:        r.FormationID,
		FormationTitle:     r.FormationTitle,
		SessionID:          r.SessionID,
		SessionLabel:       r.SessionLabel,
		CustomerName:       r.CustomerName,
		CustomerEmail:      r.CustomerEmail,
		PaymentMethod:      string(r.PaymentMethod),
		Status:             string(r.Status),
		CreatedAt:          r.CreatedAt,
		SessionChangeCount: r.SessionChangeCount,
	}
}

// ReservationsFromDomain конвертирует список бронирований
func ReservationsFromDomain(list []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, *ReservationFromDomain(&list[i]))
	}
	return out
}
