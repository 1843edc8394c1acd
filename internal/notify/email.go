// Package notify holds the outbound channels of the scoring pipeline: the
// result email and the HTTP bridge to the user service.
package notify

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// passThreshold is the percentage at or above which the email reports PASSED.
const passThreshold = 60.0

// SMTPSender delivers result emails over plain SMTP with STARTTLS auth.
// One sender is constructed at startup and reused for every message.
type SMTPSender struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	if from == "" {
		from = username
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		auth: smtp.PlainAuth("", username, password, host),
		from: from,
	}
}

// SendResult emails the scored outcome to the player.
func (s *SMTPSender) SendResult(to, quizTitle string, score, total int, percentage float64) error {
	subject := "Quiz result: " + quizTitle
	status := "FAILED."
	if percentage >= passThreshold {
		status = "PASSED!"
	}
	body := fmt.Sprintf(
		"<h3>Your quiz results %s</h3>"+
			"<p>Points: <b>%d / %d</b></p>"+
			"<p>Percentage: <b>%.2f%%</b></p>"+
			"<p>Status: <b>%s</b></p>",
		quizTitle, score, total, percentage, status,
	)

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send result email: %w", err)
	}
	return nil
}

// LogSender is used when no SMTP server is configured; it only logs.
type LogSender struct{}

func (LogSender) SendResult(to, quizTitle string, score, total int, percentage float64) error {
	log.Printf("email disabled: result for %s on %q: %d/%d (%.2f%%)", to, quizTitle, score, total, percentage)
	return nil
}
