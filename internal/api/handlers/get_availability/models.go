package get_availability

import "github.com/m04kA/atelier-booking/internal/domain"

// SessionResponse HTTP response model
type SessionResponse struct {
	FormationID    string `json:"formationId"`
	FormationTitle string `json:"formationTitle"`
	SessionID      string `json:"sessionId"`
	SessionLabel   string `json:"sessionLabel"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Capacity       int    `json:"capacity"`
	IsOpen         bool   `json:"isOpen"`
	IsCancelled    bool   `json:"isCancelled"`
	ReservedCount  int    `json:"reservedCount"`
	Remaining      int    `json:"remaining"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// FromDomain конвертирует занятость сессий в HTTP response
func FromDomain(items []domain.SessionOccupancy) *AvailabilityResponse {
	sessions := make([]SessionResponse, 0, len(items))
	for _, s := range items {
		sessions = append(sessions, SessionResponse{
			FormationID:    s.FormationID,
			FormationTitle: s.FormationTitle,
			SessionID:      s.SessionID,
			SessionLabel:   s.SessionLabel,
			StartDate:      s.StartDate,
			EndDate:        s.EndDate,
			Capacity:       s.Capacity,
			IsOpen:         s.IsOpen,
			IsCancelled:    s.IsCancelled,
			ReservedCount:  s.ReservedCount,
			Remaining:      s.Remaining,
		})
	}
	return &AvailabilityResponse{Sessions: sessions}
}
