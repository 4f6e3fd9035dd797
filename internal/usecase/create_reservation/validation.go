package create_reservation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/atelier-booking/internal/domain"
)

// validateRequest проверяет обязательные поля и формат email
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	req.FormationID = strings.TrimSpace(req.FormationID)
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)

	if req.FormationID == "" || req.SessionID == "" || req.CustomerName == "" || req.CustomerEmail == "" {
		return fmt.Errorf("%w: formationId, sessionId, customerName and customerEmail are required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName too long", ErrInvalidInput)
	}
	if len(req.CustomerEmail) > domain.MaxEmailLength {
		return fmt.Errorf("%w: customerEmail too long", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
	}
	return nil
}
