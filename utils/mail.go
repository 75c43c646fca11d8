package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strconv"

	"github.com/medinatrips/medina-api/models"
	"github.com/wneessen/go-mail"
)

const orderConfirmationTemplate = `<html>
<body>
<p>Dear {{.FirstName}} {{.LastName}},</p>
<p>Your payment for order <strong>{{.OrderNumber}}</strong> has been received.</p>
<p>Total: {{.Total}} MAD</p>
<p>We look forward to welcoming you. Keep this email as your booking reference.</p>
</body>
</html>`

func getSMTPClient() (*mail.Client, error) {
	host := os.Getenv("SMTP_HOST")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
	)
}

// SendOrderConfirmation emails the customer after a successful payment.
func SendOrderConfirmation(order models.Order) error {
	tmpl, err := template.New("orderConfirmation").Parse(orderConfirmationTemplate)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, map[string]string{
		"FirstName":   order.FirstName,
		"LastName":    order.LastName,
		"OrderNumber": order.OrderNumber,
		"Total":       fmt.Sprintf("%.2f", order.TotalMad),
	}); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	client, err := getSMTPClient()
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(os.Getenv("FROM_EMAIL")); err != nil {
		return err
	}
	if err := msg.To(order.Email); err != nil {
		return err
	}
	msg.Subject("Booking confirmation " + order.OrderNumber)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	return client.DialAndSend(msg)
}
