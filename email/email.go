package email

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

func send(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	if host == "" || port == "" || user == "" || pass == "" || from == "" {
		return fmt.Errorf("SMTP environment variables missing")
	}
	addr := fmt.Sprintf("%s:%s", host, port)
	auth := smtp.PlainAuth("", user, pass, host)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", from, to, subject, body))
	return smtp.SendMail(addr, auth, from, []string{to}, msg)
}

// SendWelcome confirms a completed registration.
func SendWelcome(to, firstName, planName, season string) error {
	subject := "Welcome to the club"
	body := fmt.Sprintf(`Hi %s,

Your registration for the %s season is confirmed.
Plan: %s

See you at the club!`, firstName, season, planName)
	if err := send(to, subject, body); err != nil {
		return err
	}
	log.Printf("[EMAIL] welcome sent to %s", to)
	return nil
}

// SendPaymentReceipt confirms a subscription payment.
func SendPaymentReceipt(to, firstName string, amount float64, season string) error {
	subject := "Payment received"
	body := fmt.Sprintf(`Hi %s,

We received your payment of %.2f for the %s season. Your subscription is now active.`, firstName, amount, season)
	if err := send(to, subject, body); err != nil {
		return err
	}
	log.Printf("[EMAIL] payment receipt sent to %s", to)
	return nil
}

// SendRenewalReminder nudges a member whose subscription ends soon.
func SendRenewalReminder(to, firstName, endDate string) error {
	subject := "Your subscription ends soon"
	body := fmt.Sprintf(`Hi %s,

Your club subscription ends on %s. Renew at the front desk or online to keep your spot.`, firstName, endDate)
	if err := send(to, subject, body); err != nil {
		return err
	}
	log.Printf("[EMAIL] renewal reminder sent to %s", to)
	return nil
}
