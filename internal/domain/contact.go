package domain

import (
	"fmt"
	"time"
)

// ContactStatus represents the processing state of a contact message
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusHandled ContactStatus = "handled"
)

// ParseContactStatus validates s against the known contact statuses
func ParseContactStatus(s string) (ContactStatus, error) {
	switch ContactStatus(s) {
	case ContactStatusNew, ContactStatusHandled:
		return ContactStatus(s), nil
	default:
		return "", fmt.Errorf("unknown contact status %q", s)
	}
}

// ContactMessage represents a message sent through the public contact form
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
