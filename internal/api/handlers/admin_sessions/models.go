package admin_sessions

import "github.com/m04kA/atelier-booking/internal/domain"

// AddSessionRequest HTTP request model; id необязателен и генерируется сервером
type AddSessionRequest struct {
	FormationID string `json:"formationId"`
	ID          string `json:"id"`
	Label       string `json:"label"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	FormationID string `json:"formationId"`
	ID          string `json:"id"`
	Label       string `json:"label"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

func (r *AddSessionRequest) toDraft() domain.SessionDraft {
	return domain.SessionDraft{
		ID:        r.ID,
		Label:     r.Label,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

func fromDomain(formationID string, s *domain.SessionOption) *SessionResponse {
	return &SessionResponse{
		FormationID: formationID,
		ID:          s.ID,
		Label:       s.Label,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
	}
}
