package list_formations

import "github.com/m04kA/atelier-booking/internal/domain"

// SessionResponse HTTP response model
type SessionResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// FormationResponse HTTP response model
type FormationResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Duration    string            `json:"duration"`
	Price       float64           `json:"price"`
	Location    string            `json:"location"`
	Teacher     string            `json:"teacher"`
	Objectives  []string          `json:"objectives"`
	Sessions    []SessionResponse `json:"sessions"`
}

// FromDomain конвертирует формации каталога в HTTP response
func FromDomain(formations []domain.Formation) []FormationResponse {
	out := make([]FormationResponse, 0, len(formations))
	for _, f := range formations {
		sessions := make([]SessionResponse, 0, len(f.Sessions))
		for _, s := range f.Sessions {
			sessions = append(sessions, SessionResponse{
				ID:        s.ID,
				Label:     s.Label,
				StartDate: s.StartDate,
				EndDate:   s.EndDate,
			})
		}
		objectives := f.Objectives
		if objectives == nil {
			objectives = []string{}
		}
		out = append(out, FormationResponse{
			ID:          f.ID,
			Title:       f.Title,
			Description: f.Description,
			Duration:    f.Duration,
			Price:       f.Price,
			Location:    f.Location,
			Teacher:     f.Teacher,
			Objectives:  objectives,
			Sessions:    sessions,
		})
	}
	return out
}
