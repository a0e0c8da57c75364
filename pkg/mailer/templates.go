package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var subjects = map[Event]string{
	EventBookingReceived:    "We received your booking %s",
	EventBookingConfirmed:   "Your booking %s is confirmed",
	EventBookingCancelled:   "Your booking %s was cancelled",
	EventBookingRescheduled: "Your booking %s was rescheduled",
	EventPaymentReceived:    "Payment received for booking %s",
}

var bodyTemplate = template.Must(template.New("email").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <p>Dear {{.CustomerName}},</p>
  {{if eq .Event "booking_received"}}
  <p>Thank you for booking <strong>{{.ProductTitle}}</strong>. Your reference is
  <strong>{{.Reference}}</strong>. We will contact you shortly to confirm the details.</p>
  {{else if eq .Event "booking_confirmed"}}
  <p>Your booking <strong>{{.Reference}}</strong> for <strong>{{.ProductTitle}}</strong>
  has been confirmed.{{if .PreferredDate}} Your start date is <strong>{{.PreferredDate}}</strong>.{{end}}</p>
  {{else if eq .Event "booking_cancelled"}}
  <p>Your booking <strong>{{.Reference}}</strong> for <strong>{{.ProductTitle}}</strong>
  has been cancelled.{{if .AdminMessage}}</p><p>{{.AdminMessage}}{{end}}</p>
  {{else if eq .Event "booking_rescheduled"}}
  <p>Your booking <strong>{{.Reference}}</strong> for <strong>{{.ProductTitle}}</strong>
  has been rescheduled{{if .PreferredDate}} to <strong>{{.PreferredDate}}</strong>{{end}}.</p>
  {{else if eq .Event "payment_received"}}
  <p>We received your payment of <strong>{{printf "%.2f" .TotalAmount}} {{.Currency}}</strong>
  for booking <strong>{{.Reference}}</strong> ({{.ProductTitle}}).</p>
  {{end}}
  <p>Warm regards,<br/>The Wellness Center team</p>
</body>
</html>
`))

// renderEmail produces the subject and HTML body for a notification.
func renderEmail(msg Message) (string, string, error) {
	subjectFormat, ok := subjects[msg.Event]
	if !ok {
		return "", "", fmt.Errorf("unknown notification event %q", msg.Event)
	}

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, msg); err != nil {
		return "", "", err
	}

	return fmt.Sprintf(subjectFormat, msg.Reference), body.String(), nil
}
