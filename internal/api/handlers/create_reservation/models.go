package create_reservation

import (
	createReservation "github.com/m04kA/atelier-booking/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	FormationID   string `json:"formationId"`
	SessionID     string `json:"sessionId"`
	PaymentMethod string `json:"paymentMethod,omitempty"` // "bank-transfer" (или "virement")
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	Message       string `json:"message"`
	IBAN          string `json:"iban"`
	ReservationID string `json:"reservationId"`
	Status        string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		FormationID:   r.FormationID,
		SessionID:     r.SessionID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
	}
}
