// Package mail sends transactional email through SendGrid. With no API key
// configured every send is a no-op, so checkout never depends on email being
// set up.
package mail

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"emporium/internal/domain"
)

type Mailer struct {
	APIKey string
	Sender string
}

func NewMailer(apiKey, sender string) *Mailer {
	return &Mailer{APIKey: apiKey, Sender: sender}
}

// OrderConfirmation mails a summary of a freshly placed order. Callers log
// failures; the order is already committed by the time this runs.
func (m *Mailer) OrderConfirmation(toEmail, toName string, order domain.Order) error {
	if m == nil || m.APIKey == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order #%d.\n\n", order.ID)
	var total int64
	for _, it := range order.Items {
		line := it.Product.PricePennies * int64(it.Count)
		total += line
		fmt.Fprintf(&b, "%d x %s - £%d.%02d\n", it.Count, it.Product.Name, line/100, line%100)
	}
	fmt.Fprintf(&b, "\nTotal: £%d.%02d\n", total/100, total%100)
	fmt.Fprintf(&b, "Delivering to: %s, %s, %s, %s\n",
		order.Address.HouseNameNumber, order.Address.StreetName,
		order.Address.TownCityName, order.Address.PostCode)

	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail("Emporium", m.Sender),
		fmt.Sprintf("Order confirmation #%d", order.ID),
		sgmail.NewEmail(toName, toEmail),
		b.String(),
		"",
	)

	resp, err := sendgrid.NewSendClient(m.APIKey).Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	return nil
}
