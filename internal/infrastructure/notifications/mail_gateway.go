package notifications

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"fotostudio/internal/usecase/interfaces"

	"github.com/wneessen/go-mail"
)

var ErrMissingSMTPHost = errors.New("missing SMTP_HOST")

// MailGateway delivers contract notifications over an SMTP relay.
//
// Env vars:
//   - SMTP_HOST, SMTP_PORT (default 587), SMTP_USERNAME, SMTP_PASSWORD
//   - MAIL_FROM (default: the SMTP_USERNAME)
//   - NOTIFICATIONS_MOCK: short-circuits delivery, logging instead of sending
type MailGateway struct {
	host     string
	port     int
	username string
	password string
	from     string
	mockMode bool
}

var _ interfaces.INotificationGateway = (*MailGateway)(nil)

func NewMailGatewayFromEnv() (*MailGateway, error) {
	if isNotificationMockEnabled() {
		log.Printf("[notify][gateway] mock mode enabled")
		return &MailGateway{mockMode: true}, nil
	}

	host := strings.TrimSpace(os.Getenv("SMTP_HOST"))
	if host == "" {
		log.Printf("[notify][gateway] missing SMTP_HOST")
		return nil, ErrMissingSMTPHost
	}

	port := 587
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv("SMTP_PORT"))); err == nil && v > 0 {
		port = v
	}

	username := os.Getenv("SMTP_USERNAME")
	from := strings.TrimSpace(os.Getenv("MAIL_FROM"))
	if from == "" {
		from = username
	}

	return &MailGateway{
		host:     host,
		port:     port,
		username: username,
		password: os.Getenv("SMTP_PASSWORD"),
		from:     from,
	}, nil
}

func (g *MailGateway) SendContractReady(ctx context.Context, to, clientName, contractID string) error {
	subject := "Your contract is ready to sign"
	body := fmt.Sprintf(
		"Hello %s,\n\nA new contract is waiting for you in your client portal.\nContract reference: %s\n\nPlease review, fill in the requested fields and sign it.\n",
		clientName, contractID,
	)
	return g.send(ctx, to, subject, body)
}

func (g *MailGateway) SendOtpCode(ctx context.Context, to, clientName, code string, expiresAt time.Time) error {
	subject := "Your signature code"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour one-time signature code is: %s\nIt expires at %s.\n\nIf you did not request this code, you can ignore this message.\n",
		clientName, code, expiresAt.UTC().Format(time.RFC1123),
	)
	return g.send(ctx, to, subject, body)
}

func (g *MailGateway) SendSignedConfirmation(ctx context.Context, to, clientName, contractID, signedDocumentRef string) error {
	subject := "Your contract has been signed"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour contract %s has been signed successfully.\nSigned document: %s\n\nThank you.\n",
		clientName, contractID, signedDocumentRef,
	)
	return g.send(ctx, to, subject, body)
}

func (g *MailGateway) send(ctx context.Context, to, subject, body string) error {
	if g.mockMode {
		log.Printf("[notify][gateway] mock send to=%s subject=%q body_len=%d", to, subject, len(body))
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(g.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(g.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if g.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(g.username),
			mail.WithPassword(g.password),
		)
	}

	client, err := mail.NewClient(g.host, opts...)
	if err != nil {
		log.Printf("[notify][gateway] client init failed err=%v", err)
		return err
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Printf("[notify][gateway] send failed to=%s err=%v", to, err)
		return err
	}
	log.Printf("[notify][gateway] send success to=%s subject=%q", to, subject)
	return nil
}

func isNotificationMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("NOTIFICATIONS_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
