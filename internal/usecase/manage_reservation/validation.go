package manage_reservation

import (
	"fmt"
	"strings"
)

func validateCredentials(c *Credentials) error {
	c.ReservationID = strings.TrimSpace(c.ReservationID)
	c.Email = strings.TrimSpace(c.Email)
	if c.ReservationID == "" || c.Email == "" {
		return fmt.Errorf("%w: reservation id and email are required", ErrInvalidInput)
	}
	return nil
}
