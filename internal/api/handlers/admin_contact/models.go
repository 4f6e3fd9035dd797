package admin_contact

import (
	"time"

	"github.com/m04kA/atelier-booking/internal/domain"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// MessageResponse HTTP response model
type MessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListResponse HTTP response model
type ListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

func fromDomain(m *domain.ContactMessage) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func listFromDomain(list []domain.ContactMessage) *ListResponse {
	out := make([]MessageResponse, 0, len(list))
	for i := range list {
		out = append(out, *fromDomain(&list[i]))
	}
	return &ListResponse{Messages: out}
}
