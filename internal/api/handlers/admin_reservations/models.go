package admin_reservations

import (
	"github.com/m04kA/atelier-booking/internal/api/handlers"
	"github.com/m04kA/atelier-booking/internal/service/admin"
)

// UpdateReservationRequest HTTP request model; отсутствующие поля не меняются
type UpdateReservationRequest struct {
	FormationID *string `json:"formationId"`
	SessionID   *string `json:"sessionId"`
	Status      *string `json:"status"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Reservations []handlers.ReservationResponse `json:"reservations"`
}

func (r *UpdateReservationRequest) toChange() admin.ReservationChange {
	return admin.ReservationChange{
		FormationID: r.FormationID,
		SessionID:   r.SessionID,
		Status:      r.Status,
	}
}
