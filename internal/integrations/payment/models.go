package payment

import (
	"time"

	"github.com/m04kA/atelier-booking/internal/domain"
)

// Config параметры платежного шлюза
type Config struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
	SuccessURL    string
	CancelURL     string
	// PriceOverrides цена по formationId: id цены шлюза ("price_...") или сумма в валюте
	PriceOverrides map[string]string
	// CheckoutTTL время жизни страницы оплаты; 0 - значение шлюза по умолчанию
	CheckoutTTL time.Duration
}

// CheckoutRequest данные для создания страницы оплаты
type CheckoutRequest struct {
	Formation     domain.Formation
	Session       domain.SessionOption
	CustomerName  string
	CustomerEmail string
}

// Checkout созданная во внешнем шлюзе страница оплаты
type Checkout struct {
	ExternalID string
	URL        string
}

// EventKind тип асинхронного события шлюза
type EventKind string

const (
	EventPaymentCompleted EventKind = "payment_completed"
	EventCheckoutExpired  EventKind = "checkout_expired"
	EventIgnored          EventKind = "ignored"
)

// Event событие шлюза, привязанное к внешнему id страницы оплаты
type Event struct {
	ID         string
	Kind       EventKind
	Type       string
	ExternalID string
}
