package create_checkout

import (
	createReservation "github.com/m04kA/atelier-booking/internal/usecase/create_reservation"
)

// CreateCheckoutRequest HTTP request model
type CreateCheckoutRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	FormationID   string `json:"formationId"`
	SessionID     string `json:"sessionId"`
}

// CreateCheckoutResponse HTTP response model
type CreateCheckoutResponse struct {
	URL           string `json:"url"`
	ReservationID string `json:"reservationId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateCheckoutRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		FormationID:   r.FormationID,
		SessionID:     r.SessionID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
	}
}
