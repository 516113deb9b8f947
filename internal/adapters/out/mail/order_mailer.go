// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	orderdom "vergilius/internal/domain/order"
)

// EmailClient is the minimal send interface (implemented by SendGridClient).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderMailer formats and sends the order confirmation mail.
// Implements usecase.OrderMailer.
type OrderMailer struct {
	client EmailClient
	from   string
}

func NewOrderMailer(client EmailClient, from string) *OrderMailer {
	return &OrderMailer{client: client, from: strings.TrimSpace(from)}
}

func (m *OrderMailer) SendOrderConfirmation(ctx context.Context, to string, o orderdom.Order) error {
	if m == nil || m.client == nil {
		return errors.New("order_mailer: email client is nil")
	}

	to = strings.TrimSpace(to)
	if to == "" {
		return errors.New("order_mailer: to address is empty")
	}

	subject := fmt.Sprintf("Vergilius Nectar - ordine ricevuto (%s)", shortID(o.ID))

	var b strings.Builder
	fmt.Fprintf(&b, "Grazie %s!\n\n", fallbackName(o.UserName))
	fmt.Fprintf(&b, "Abbiamo ricevuto il tuo ordine %s.\n\n", shortID(o.ID))
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %d x %s %s = %.2f EUR\n", it.Quantity, it.Name, it.Variant, it.Price*float64(it.Quantity))
	}
	fmt.Fprintf(&b, "\nTotale: %.2f EUR\nStato: %s\n", o.Total, o.Status)

	return m.client.Send(ctx, m.from, to, subject, b.String())
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func fallbackName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "amico dell'idromele"
	}
	return name
}
