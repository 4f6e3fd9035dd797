package manage_reservation

import (
	"github.com/m04kA/atelier-booking/internal/api/handlers"
	"github.com/m04kA/atelier-booking/internal/domain"
	manageReservation "github.com/m04kA/atelier-booking/internal/usecase/manage_reservation"
)

// LookupRequest HTTP request model
type LookupRequest struct {
	ReservationID string `json:"reservationId"`
	Email         string `json:"email"`
}

// ChangeSessionRequest HTTP request model
type ChangeSessionRequest struct {
	Email     string `json:"email"`
	SessionID string `json:"sessionId"`
}

// CancelRequest HTTP request model
type CancelRequest struct {
	Email string `json:"email"`
}

// LookupResponse HTTP response model
type LookupResponse struct {
	Reservation *handlers.ReservationResponse `json:"reservation"`
	Sessions    []domain.SessionOccupancy     `json:"sessions"`
}

// ReservationEnvelope HTTP response model
type ReservationEnvelope struct {
	Message     string                        `json:"message"`
	Reservation *handlers.ReservationResponse `json:"reservation"`
}

func lookupFromUseCase(resp *manageReservation.LookupResponse) *LookupResponse {
	sessions := resp.Sessions
	if sessions == nil {
		sessions = []domain.SessionOccupancy{}
	}
	return &LookupResponse{
		Reservation: handlers.ReservationFromDomain(&resp.Reservation),
		Sessions:    sessions,
	}
}
