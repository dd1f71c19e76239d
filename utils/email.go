// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendWithdrawalProcessedEmail notifies a wallet owner that their withdrawal
// request was approved or rejected. Failures are logged, never fatal: mail is
// a courtesy, not part of the ledger.
func SendWithdrawalProcessedEmail(toEmail, fullName string, amount float64, approved bool, note string) error {
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	if host == "" || username == "" || password == "" {
		log.Printf("SMTP not configured, skipping withdrawal email to %s", toEmail)
		return nil
	}

	port := 587
	if portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}
	if from == "" {
		from = username
	}

	var subject, body string
	if approved {
		subject = "Your withdrawal has been processed"
		body = fmt.Sprintf("Hi %s,\n\nYour withdrawal of ₹%.2f has been approved and is on its way.\n", fullName, amount)
	} else {
		subject = "Your withdrawal request was rejected"
		body = fmt.Sprintf("Hi %s,\n\nYour withdrawal request of ₹%.2f was rejected.\n", fullName, amount)
	}
	if note != "" {
		body += "\nNote: " + note + "\n"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send withdrawal email: %w", err)
	}
	return nil
}
