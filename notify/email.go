// Package notify is the best-effort email collaborator. Lifecycle code
// calls Send and logs any failure; a send error never fails the operation
// that triggered it.
package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends plain-text mail over SMTP with AUTH PLAIN.
type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func NewSMTPSender(host, port, user, pass, from string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass, From: from}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	if to == "" {
		return nil
	}

	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)
	return smtp.SendMail(addr, auth, s.From, []string{to}, []byte(msg))
}

// LogSender is the fallback when SMTP is not configured; it records the
// mail instead of sending it, so lifecycle side effects stay observable in
// development.
type LogSender struct{}

func (LogSender) Send(to, subject, body string) error {
	log.Printf("email (not sent, SMTP unconfigured) to=%s subject=%q", to, subject)
	return nil
}

// FromConfig picks the SMTP sender when a host is configured, the log
// sender otherwise.
func FromConfig(host, port, user, pass, from string) Sender {
	if host == "" {
		return LogSender{}
	}
	return NewSMTPSender(host, port, user, pass, from)
}
