package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/tripnest/tripnest_backend/models"
)

// SendInquiryNotification emails the staff inbox about a newly persisted
// submission. Callers run it in a goroutine; a send failure is logged
// and never fails the intake request.
func SendInquiryNotification(submission *models.Submission) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	notifyTo := os.Getenv("INQUIRY_NOTIFY_EMAIL")

	if smtpHost == "" || notifyTo == "" {
		// Notifications are optional in development
		log.Println("SMTP not configured, skipping inquiry notification")
		return nil
	}

	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			smtpPort = port
		}
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = smtpUser
	}

	subject := fmt.Sprintf("New %s inquiry from %s", submission.Type, submission.Name)

	var body strings.Builder
	fmt.Fprintf(&body, "A new %s inquiry was submitted.\n\n", submission.Type)
	fmt.Fprintf(&body, "Name: %s\nEmail: %s\nPhone: %s\n", submission.Name, submission.Email, submission.Phone)
	fmt.Fprintf(&body, "Received: %s\n\n", submission.CreatedAt.Format("2006-01-02 15:04:05"))
	for field, value := range submission.Details {
		fmt.Fprintf(&body, "%s: %v\n", field, value)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", notifyTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send inquiry notification: %v", err)
		return err
	}

	return nil
}
