package emailer

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"hawurwanda/metrics"

	gomail "gopkg.in/gomail.v2"
)

// Send delivers a plain-text email through the configured SMTP relay.
// Delivery is best-effort: callers never fail a request on email errors.
func Send(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return fmt.Errorf("SMTP_HOST not configured")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	from := os.Getenv("SMTP_FROM")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASSWORD"))
	return d.DialAndSend(m)
}

// SendAsync fires Send in the background, logging and counting failures.
func SendAsync(to, subject, body string) {
	go func() {
		if err := Send(to, subject, body); err != nil {
			log.Printf("email to %s failed: %v", to, err)
			metrics.SideEffectFailures.WithLabelValues("email").Inc()
		}
	}()
}

func SendWelcome(to, name string) {
	SendAsync(to, "Welcome to HawuRwanda",
		fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now book services at verified salons across Rwanda.\n", name))
}

func SendSalonVerified(to, salonName string) {
	SendAsync(to, "Your salon has been verified",
		fmt.Sprintf("Good news! %s has been verified and is now visible to clients.\n", salonName))
}

func SendSalonRejected(to, salonName, reason string) {
	if reason == "" {
		reason = "it did not meet our listing requirements"
	}
	SendAsync(to, "Your salon listing was not approved",
		fmt.Sprintf("We reviewed %s and could not approve it because %s.\n", salonName, reason))
}
