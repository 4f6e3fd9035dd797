package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	defaultCurrency = "eur"

	eventCheckoutCompleted = "checkout.session.completed"
	eventCheckoutExpired   = "checkout.session.expired"
)

// Gateway мост к Stripe Checkout
type Gateway struct {
	cfg      Config
	sessions checkoutSessions
	logger   Logger
}

// NewGateway создает мост. Без SecretKey CreateCheckout возвращает ErrNotConfigured.
func NewGateway(cfg Config, logger Logger) *Gateway {
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	g := &Gateway{cfg: cfg, logger: logger}
	if cfg.SecretKey != "" {
		g.sessions = &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: cfg.SecretKey}
	}
	return g
}

// Enabled true, если можно создавать страницы оплаты
func (g *Gateway) Enabled() bool {
	return g.sessions != nil
}

// WebhookEnabled true, если можно проверять подпись событий
func (g *Gateway) WebhookEnabled() bool {
	return g.cfg.SecretKey != "" && g.cfg.WebhookSecret != ""
}

// CreateCheckout создает страницу оплаты для одного места в сессии
func (g *Gateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	if !g.Enabled() {
		return nil, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail:            stripe.String(req.CustomerEmail),
		SuccessURL:               stripe.String(g.cfg.SuccessURL),
		CancelURL:                stripe.String(g.cfg.CancelURL),
		AllowPromotionCodes:      stripe.Bool(false),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionAuto)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			LineItem(req.Formation.Title, req.Session.Label, req.Formation.Price, g.cfg.Currency, g.cfg.PriceOverrides[req.Formation.ID]),
		},
	}
	if g.cfg.CheckoutTTL > 0 {
		params.ExpiresAt = stripe.Int64(time.Now().Add(g.cfg.CheckoutTTL).Unix())
	}
	params.Context = ctx
	params.AddMetadata("formationId", req.Formation.ID)
	params.AddMetadata("sessionId", req.Session.ID)
	params.AddMetadata("customerName", req.CustomerName)
	params.AddMetadata("customerEmail", req.CustomerEmail)

	cs, err := g.sessions.New(params)
	if err != nil {
		g.logger.Error("CreateCheckout: stripe error for formation=%s session=%s: %v", req.Formation.ID, req.Session.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	g.logger.Info("CreateCheckout: checkout id=%s created for session=%s", cs.ID, req.Session.ID)
	return &Checkout{ExternalID: cs.ID, URL: cs.URL}, nil
}

// ParseEvent проверяет подпись и извлекает из события внешний id страницы оплаты
func (g *Gateway) ParseEvent(payload []byte, signature string) (*Event, error) {
	if !g.WebhookEnabled() {
		return nil, ErrNotConfigured
	}
	if signature == "" {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidSignature)
	}

	ev, err := webhook.ConstructEventWithOptions(payload, signature, g.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &Event{ID: ev.ID, Type: string(ev.Type), Kind: EventIgnored}
	switch string(ev.Type) {
	case eventCheckoutCompleted:
		out.Kind = EventPaymentCompleted
	case eventCheckoutExpired:
		out.Kind = EventCheckoutExpired
	default:
		return out, nil
	}

	if ev.Data == nil {
		return nil, fmt.Errorf("%w: event %s without data", ErrInvalidPayload, ev.ID)
	}
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if cs.ID == "" {
		return nil, fmt.Errorf("%w: checkout session without id", ErrInvalidPayload)
	}
	out.ExternalID = cs.ID
	return out, nil
}

// LineItem строит позицию оплаты. override может быть id цены шлюза ("price_...")
// или положительной суммой в валюте; иначе берется цена формации.
func LineItem(title, sessionLabel string, price float64, currency, override string) *stripe.CheckoutSessionLineItemParams {
	override = strings.TrimSpace(override)
	if strings.HasPrefix(override, "price_") {
		return &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(override),
			Quantity: stripe.Int64(1),
		}
	}
	if v, err := strconv.ParseFloat(override, 64); err == nil && v > 0 && !math.IsInf(v, 0) {
		price = v
	}

	return &stripe.CheckoutSessionLineItemParams{
		Quantity: stripe.Int64(1),
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(currency),
			UnitAmount: stripe.Int64(ToMinorUnits(price)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String(title),
				Description: stripe.String(sessionLabel),
			},
		},
	}
}

// ToMinorUnits переводит сумму в центы с округлением
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
