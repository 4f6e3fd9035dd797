package notifier

import (
	"fmt"
	"strings"

	"github.com/m04kA/atelier-booking/internal/domain"
)

// Reason причина уведомления
type Reason string

const (
	ReasonPending        Reason = "pending"
	ReasonConfirmed      Reason = "confirmed"
	ReasonSessionChanged Reason = "session_changed"
	ReasonCancelled      Reason = "cancelled"
)

// Notification снимок бронирования и причина уведомления
type Notification struct {
	Reservation domain.Reservation
	Reason      Reason
	// CheckoutURL ссылка на страницу оплаты (только для карты)
	CheckoutURL string
	// Location адрес формации на момент уведомления
	Location string
}

// Message готовое к отправке письмо
type Message struct {
	To      string `json:"to"`
	Bcc     string `json:"bcc,omitempty"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// Template параметры текста писем
type Template struct {
	BusinessName    string
	DefaultLocation string
	IBAN            string
	ContactEmail    string
	AdminCopy       string
}

// Render строит письмо для уведомления
func (t Template) Render(n Notification) (Message, error) {
	r := n.Reservation
	to := strings.TrimSpace(r.CustomerEmail)
	if to == "" {
		return Message{}, ErrNoRecipient
	}

	location := n.Location
	if location == "" {
		location = t.DefaultLocation
	}

	var subject, status string
	switch n.Reason {
	case ReasonSessionChanged:
		subject = "Changement de session enregistré - " + r.FormationTitle
		status = "Votre changement de session est confirmé."
	case ReasonConfirmed:
		subject = "Confirmation de paiement - " + r.FormationTitle
		status = "Votre paiement a bien été reçu."
		if r.PaymentMethod == domain.PaymentBankTransfer {
			status = "Votre virement a bien été reçu. Votre inscription est confirmée."
		}
	case ReasonCancelled:
		subject = "Confirmation d'annulation - " + r.FormationTitle
		status = "Votre réservation a bien été annulée."
	default:
		subject = "Confirmation de réservation - " + r.FormationTitle
		status = "Votre réservation est enregistrée et en attente de validation du paiement."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\n%s\n\n", r.CustomerName, status)
	fmt.Fprintf(&b, "Stage : %s\n", r.FormationTitle)
	fmt.Fprintf(&b, "Session : %s\n", r.SessionLabel)
	fmt.Fprintf(&b, "Lieu : %s\n", location)
	fmt.Fprintf(&b, "ID de réservation : %s\n", r.ID)
	if n.Reason != ReasonCancelled {
		fmt.Fprintf(&b, "Mode de paiement : %s\n", paymentLabel(r.PaymentMethod))
	}
	if n.CheckoutURL != "" {
		fmt.Fprintf(&b, "\nPaiement : %s\n", n.CheckoutURL)
	}
	if n.Reason == ReasonPending && r.PaymentMethod == domain.PaymentBankTransfer && t.IBAN != "" {
		fmt.Fprintf(&b, "\nInformations de virement\nIBAN : %s\n", t.IBAN)
		if t.ContactEmail != "" {
			fmt.Fprintf(&b, "Merci d'envoyer le justificatif à %s\n", t.ContactEmail)
		}
	}
	if n.Reason == ReasonCancelled {
		b.WriteString("\nÀ une prochaine fois !\n")
	} else {
		b.WriteString("\nÀ très bientôt !\n")
	}
	if t.BusinessName != "" {
		fmt.Fprintf(&b, "- %s\n", t.BusinessName)
	}

	return Message{
		To:      to,
		Bcc:     t.AdminCopy,
		Subject: subject,
		Text:    b.String(),
	}, nil
}

func paymentLabel(m domain.PaymentMethod) string {
	if m == domain.PaymentCard {
		return "Carte bancaire"
	}
	return "Virement bancaire"
}
