package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/panchagiri/resume-chatbot/models"
)

// smtpTimeout bounds the dial and the whole submission exchange. Notify runs
// outside the request's completion budget, so it carries its own limit.
const smtpTimeout = 10 * time.Second

// EmailNotifier sends availability inquiries to the résumé owner over an
// authenticated STARTTLS mail submission. Without credentials it disables
// itself and every Notify call returns false.
type EmailNotifier struct {
	host      string
	port      int
	username  string
	password  string
	recipient string
	timeout   time.Duration
	log       *zap.Logger
	now       func() time.Time
}

// NewEmailNotifier creates the notifier. Empty username or password leaves
// it disabled rather than failing.
func NewEmailNotifier(host string, port int, username, password, recipient string, log *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		recipient: recipient,
		timeout:   smtpTimeout,
		log:       log,
		now:       time.Now,
	}
}

// Enabled reports whether transport credentials are present.
func (n *EmailNotifier) Enabled() bool {
	return n.username != "" && n.password != ""
}

// Notify formats and delivers one availability notification. Delivery is
// best-effort: any failure is logged and reported as false, never as an
// error that could abort the request.
func (n *EmailNotifier) Notify(ctx context.Context, question string, contact models.ContactInfo, dateContext string) bool {
	if !n.Enabled() {
		n.log.Warn("mail credentials not configured, skipping email notification")
		return false
	}

	subject := fmt.Sprintf("Availability Inquiry from %s - Resume Chatbot", orUnknown(contact.Name))
	body := buildNotificationBody(question, contact, dateContext, n.now())
	message := buildMessage(n.username, n.recipient, subject, body)

	if err := n.send(ctx, message); err != nil {
		n.log.Error("failed to send availability notification", zap.Error(err))
		return false
	}

	n.log.Info("availability notification sent", zap.String("to", n.recipient))
	return true
}

// buildNotificationBody renders the plaintext email. Missing contact fields
// get a "Not provided" placeholder.
func buildNotificationBody(question string, contact models.ContactInfo, dateContext string, received time.Time) string {
	var b strings.Builder

	b.WriteString("New Availability Inquiry from Resume Chatbot\n\n")
	b.WriteString("Contact Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orNotProvided(contact.Name))
	fmt.Fprintf(&b, "- Email: %s\n", orNotProvided(contact.Email))
	fmt.Fprintf(&b, "- Company: %s\n", orNotProvided(contact.Company))
	fmt.Fprintf(&b, "- Role: %s\n\n", orNotProvided(contact.Role))
	fmt.Fprintf(&b, "Question: %q\n\n", question)
	if dateContext != "" {
		fmt.Fprintf(&b, "Requested Timeframe: %s\n\n", dateContext)
	}
	fmt.Fprintf(&b, "Time Received: %s\n", received.Format("January 2, 2006 at 3:04 PM MST"))

	return b.String()
}

// buildMessage assembles the RFC 822 message with headers.
func buildMessage(from, to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return b.String()
}

// send submits the message over SMTP with STARTTLS and PLAIN auth.
func (n *EmailNotifier) send(ctx context.Context, message string) error {
	addr := fmt.Sprintf("%s:%d", n.host, n.port)

	dialer := &net.Dialer{Timeout: n.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	// One deadline covers the whole exchange so a silent server cannot
	// stall the request.
	deadline := time.Now().Add(n.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open SMTP session: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: n.host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", n.username, n.password, n.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(n.username); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(n.recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

func orNotProvided(v string) string {
	if v == "" {
		return "Not provided"
	}
	return v
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
