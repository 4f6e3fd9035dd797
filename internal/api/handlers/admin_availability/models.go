package admin_availability

import (
	"errors"

	"github.com/m04kA/atelier-booking/internal/domain"
)

var (
	errCapacityType    = errors.New("capacity must be a number")
	errIsOpenType      = errors.New("isOpen must be a boolean")
	errIsCancelledType = errors.New("isCancelled must be a boolean")
)

// UpdateAvailabilityRequest HTTP request model.
// Поля без типа: тип проверяется вручную, чтобы вернуть точное сообщение об ошибке.
type UpdateAvailabilityRequest struct {
	Capacity    interface{} `json:"capacity"`
	IsOpen      interface{} `json:"isOpen"`
	IsCancelled interface{} `json:"isCancelled"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SessionID   string `json:"sessionId"`
	Capacity    int    `json:"capacity"`
	IsOpen      bool   `json:"isOpen"`
	IsCancelled bool   `json:"isCancelled"`
}

// OverviewResponse HTTP response model
type OverviewResponse struct {
	Sessions []domain.SessionOccupancy `json:"sessions"`
}

// ToDomain проверяет типы полей и строит частичное обновление
func (r *UpdateAvailabilityRequest) ToDomain() (domain.AvailabilityUpdate, error) {
	var u domain.AvailabilityUpdate
	if r.Capacity != nil {
		c, ok := r.Capacity.(float64)
		if !ok {
			return u, errCapacityType
		}
		u.Capacity = &c
	}
	if r.IsOpen != nil {
		b, ok := r.IsOpen.(bool)
		if !ok {
			return u, errIsOpenType
		}
		u.IsOpen = &b
	}
	if r.IsCancelled != nil {
		b, ok := r.IsCancelled.(bool)
		if !ok {
			return u, errIsCancelledType
		}
		u.IsCancelled = &b
	}
	return u, nil
}

func fromDomain(a domain.SessionAvailability) *AvailabilityResponse {
	return &AvailabilityResponse{
		SessionID:   a.SessionID,
		Capacity:    a.Capacity,
		IsOpen:      a.IsOpen,
		IsCancelled: a.IsCancelled,
	}
}
