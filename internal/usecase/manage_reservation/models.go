package manage_reservation

import "github.com/m04kA/atelier-booking/internal/domain"

// Credentials пара id бронирования и email клиента
type Credentials struct {
	ReservationID string
	Email         string
}

// LookupResponse бронирование и сессии его формации с занятостью
type LookupResponse struct {
	Reservation domain.Reservation
	Sessions    []domain.SessionOccupancy
}
