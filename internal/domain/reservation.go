package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ReservationStatus represents the payment/lifecycle status of a reservation
type ReservationStatus string

const (
	StatusCardPending       ReservationStatus = "card_pending"
	StatusCardConfirmed     ReservationStatus = "card_confirmed"
	StatusTransferPending   ReservationStatus = "transfer_pending"
	StatusTransferConfirmed ReservationStatus = "transfer_confirmed"
	StatusCancelled         ReservationStatus = "cancelled"
)

// legacyStatuses maps names written by older deployments to the current enumeration
var legacyStatuses = map[string]ReservationStatus{
	"stripe_pending":      StatusCardPending,
	"stripe_confirmed":    StatusCardConfirmed,
	"virement_en_attente": StatusTransferPending,
	"virement_confirme":   StatusTransferConfirmed,
}

// ParseReservationStatus validates s against the known statuses.
// Legacy names are accepted and normalized.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	v := strings.TrimSpace(s)
	switch ReservationStatus(v) {
	case StatusCardPending, StatusCardConfirmed, StatusTransferPending, StatusTransferConfirmed, StatusCancelled:
		return ReservationStatus(v), nil
	}
	if st, ok := legacyStatuses[v]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// IsActive returns true if the status occupies a seat
func (s ReservationStatus) IsActive() bool {
	switch s {
	case StatusCardPending, StatusCardConfirmed, StatusTransferPending, StatusTransferConfirmed:
		return true
	default:
		return false
	}
}

// UnmarshalJSON normalizes legacy names. Unknown values are kept as-is so that
// a single bad record does not make the whole collection unreadable; they are
// simply never counted as active.
func (s *ReservationStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if st, err := ParseReservationStatus(raw); err == nil {
		*s = st
		return nil
	}
	*s = ReservationStatus(raw)
	return nil
}

// PaymentMethod represents how a reservation is paid
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank-transfer"
)

// ParsePaymentMethod validates s; legacy "stripe" and "virement" are normalized
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.TrimSpace(s) {
	case string(PaymentCard), "stripe":
		return PaymentCard, nil
	case string(PaymentBankTransfer), "virement":
		return PaymentBankTransfer, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

// UnmarshalJSON normalizes legacy names
func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if pm, err := ParsePaymentMethod(raw); err == nil {
		*m = pm
		return nil
	}
	*m = PaymentMethod(raw)
	return nil
}

// Reservation represents a customer's booking against one session
type Reservation struct {
	ID                       string            `json:"id"`
	FormationID              string            `json:"formationId"`
	FormationTitle           string            `json:"formationTitle"` // snapshot at booking time
	SessionID                string            `json:"sessionId"`
	SessionLabel             string            `json:"sessionLabel"` // snapshot at booking time
	CustomerName             string            `json:"customerName"`
	CustomerEmail            string            `json:"customerEmail"`
	PaymentMethod            PaymentMethod     `json:"paymentMethod"`
	Status                   ReservationStatus `json:"status"`
	ExternalPaymentSessionID string            `json:"externalPaymentSessionId,omitempty"`
	CreatedAt                time.Time         `json:"createdAt"`
	SessionChangeCount       int               `json:"sessionChangeCount"`
}

// createdAtLayouts formats accepted when reading stored reservations
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON reads stored reservations written by current and older deployments:
// stripeSessionId fills the external payment reference when the new field is absent,
// and a createdAt that is not a full timestamp is parsed by date or left zero
// instead of failing the whole collection.
func (r *Reservation) UnmarshalJSON(data []byte) error {
	type plain Reservation
	aux := struct {
		*plain
		CreatedAt       json.RawMessage `json:"createdAt"`
		StripeSessionID string          `json:"stripeSessionId"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.ExternalPaymentSessionID == "" {
		r.ExternalPaymentSessionID = aux.StripeSessionID
	}
	r.CreatedAt = parseCreatedAt(aux.CreatedAt)
	return nil
}

func parseCreatedAt(raw json.RawMessage) time.Time {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// IsActive returns true if the reservation occupies a seat
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// MatchesEmail compares the customer e-mail case-insensitively, ignoring surrounding blanks
func (r *Reservation) MatchesEmail(email string) bool {
	a := strings.ToLower(strings.TrimSpace(r.CustomerEmail))
	b := strings.ToLower(strings.TrimSpace(email))
	return a != "" && a == b
}

// NewReservation is the input for creating a reservation
type NewReservation struct {
	FormationID              string
	FormationTitle           string
	SessionID                string
	SessionLabel             string
	CustomerName             string
	CustomerEmail            string
	PaymentMethod            PaymentMethod
	Status                   ReservationStatus
	ExternalPaymentSessionID string
}

// ReservationPatch is a partial update; nil fields are left untouched
type ReservationPatch struct {
	FormationID              *string
	FormationTitle           *string
	SessionID                *string
	SessionLabel             *string
	Status                   *ReservationStatus
	ExternalPaymentSessionID *string
	SessionChangeCount       *int
}

// Apply merges the patch onto the reservation
func (p ReservationPatch) Apply(r *Reservation) {
	if p.FormationID != nil {
		r.FormationID = *p.FormationID
	}
	if p.FormationTitle != nil {
		r.FormationTitle = *p.FormationTitle
	}
	if p.SessionID != nil {
		r.SessionID = *p.SessionID
	}
	if p.SessionLabel != nil {
		r.SessionLabel = *p.SessionLabel
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.ExternalPaymentSessionID != nil {
		r.ExternalPaymentSessionID = *p.ExternalPaymentSessionID
	}
	if p.SessionChangeCount != nil {
		r.SessionChangeCount = *p.SessionChangeCount
	}
}

// IsEmpty returns true if the patch changes nothing
func (p ReservationPatch) IsEmpty() bool {
	return p.FormationID == nil && p.FormationTitle == nil &&
		p.SessionID == nil && p.SessionLabel == nil && p.Status == nil &&
		p.ExternalPaymentSessionID == nil && p.SessionChangeCount == nil
}
