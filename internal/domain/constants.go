package domain

import "time"

// Default configuration values
const (
	DefaultSessionCapacity       = 12
	DefaultPendingTimeoutMinutes = 5
)

// Business validation constants
const (
	MaxCustomerNameLength = 200
	MaxEmailLength        = 320
	MaxContactMessage     = 5000
	MaxNewsTitleLength    = 300
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultPendingTimeout таймаут неоплаченной карточной брони по умолчанию
const DefaultPendingTimeout = DefaultPendingTimeoutMinutes * time.Minute

// ActiveStatuses статусы, которые занимают место в сессии
var ActiveStatuses = []ReservationStatus{
	StatusCardPending,
	StatusCardConfirmed,
	StatusTransferPending,
	StatusTransferConfirmed,
}

