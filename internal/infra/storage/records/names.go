package records

import "strings"

// Имена документов, используемых сервисами
const (
	DocFormationsExtraSessions = "extraSessions"
	DocFormationsRemoved       = "removedSessions"
	DocAvailability            = "availability"
	DocReservations            = "reservations"
	DocContactMessages         = "contactMessages"
	DocNews                    = "nknews"
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return ErrInvalidName
	}
	return nil
}
