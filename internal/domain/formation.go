package domain

// SessionOption represents one scheduled occurrence (date range) of a formation.
// ID is unique across the whole catalog: availability and reservations index by it alone.
type SessionOption struct {
	ID        string `json:"id" yaml:"id"`
	Label     string `json:"label" yaml:"label"`
	StartDate string `json:"startDate" yaml:"startDate"` // YYYY-MM-DD
	EndDate   string `json:"endDate" yaml:"endDate"`     // YYYY-MM-DD
}

// Formation represents a bookable course offering
type Formation struct {
	ID          string          `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Duration    string          `json:"duration" yaml:"duration"`
	Price       float64         `json:"price" yaml:"price"`
	Location    string          `json:"location" yaml:"location"`
	Teacher     string          `json:"teacher" yaml:"teacher"`
	Objectives  []string        `json:"objectives" yaml:"objectives"`
	Sessions    []SessionOption `json:"sessions" yaml:"sessions"`
}

// FindSession returns the session with the given id, or nil
func (f *Formation) FindSession(sessionID string) *SessionOption {
	for i := range f.Sessions {
		if f.Sessions[i].ID == sessionID {
			return &f.Sessions[i]
		}
	}
	return nil
}

// SessionDraft is the admin input for adding a session; ID is optional
type SessionDraft struct {
	ID        string
	Label     string
	StartDate string
	EndDate   string
}

// FindFormation returns the formation with the given id, or nil
func FindFormation(formations []Formation, formationID string) *Formation {
	for i := range formations {
		if formations[i].ID == formationID {
			return &formations[i]
		}
	}
	return nil
}

// FindFormationBySession returns the formation owning the session, or nil
func FindFormationBySession(formations []Formation, sessionID string) *Formation {
	for i := range formations {
		if formations[i].FindSession(sessionID) != nil {
			return &formations[i]
		}
	}
	return nil
}
