package payment_webhook

// WebhookResponse подтверждение получения события
type WebhookResponse struct {
	Received bool `json:"received"`
}
