package domain

// SessionAvailability holds the capacity and open/cancelled state of a session.
// Invariant: IsCancelled implies !IsOpen.
type SessionAvailability struct {
	SessionID   string `json:"sessionId"`
	Capacity    int    `json:"capacity"`
	IsOpen      bool   `json:"isOpen"`
	IsCancelled bool   `json:"isCancelled"`
}

// DefaultAvailability returns the entry used for sessions without a stored one
func DefaultAvailability(sessionID string, capacity int) SessionAvailability {
	return SessionAvailability{
		SessionID:   sessionID,
		Capacity:    capacity,
		IsOpen:      true,
		IsCancelled: false,
	}
}

// AcceptsBookings returns true if the session is open and not cancelled
func (a SessionAvailability) AcceptsBookings() bool {
	return a.IsOpen && !a.IsCancelled
}

// AvailabilityUpdate is a partial update of a SessionAvailability.
// Capacity is a float so that fractional input can be floored rather than rejected.
type AvailabilityUpdate struct {
	Capacity    *float64
	IsOpen      *bool
	IsCancelled *bool
}

// SessionOccupancy is a catalog session enriched with its availability and live reservation count
type SessionOccupancy struct {
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

// IsFull returns true if no seat remains
func (o *SessionOccupancy) IsFull() bool {
	return o.Remaining <= 0
}
