package mailer

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer delivers rendered tickets over SMTP. Delivery is best-effort and
// can be disabled globally with EMAIL_DISABLED=true, in which case sends are
// logged and always succeed.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Disabled bool
}

func FromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return &Mailer{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USER"),
		Password: os.Getenv("SMTP_PASS"),
		From:     os.Getenv("SMTP_USER"),
		Disabled: os.Getenv("EMAIL_DISABLED") == "true",
	}
}

// SendTicket emails the PDF to the attendee as an attachment.
func (m *Mailer) SendTicket(to, participantName, eventName string, pdf []byte, filename string) error {
	if m.Disabled {
		log.Printf("Email delivery disabled, skipping ticket email to %s", to)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.From, "Event Ticketing"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your ticket for %s", eventName))
	msg.SetBody("text/html", fmt.Sprintf(
		"<h1>Your ticket for %s</h1><p>Hello <strong>%s</strong>,</p><p>Thank you for registering. Your ticket is attached as a PDF.</p>",
		eventName, participantName,
	))
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	dialer := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return dialer.DialAndSend(msg)
}
