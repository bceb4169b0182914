package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"wishshare/internal/domain"
)

// OfferNotice is the payload sent to a wish owner after an offer commits.
type OfferNotice struct {
	WishID     int64
	WishName   string
	Amount     domain.Money
	FromUserID int64
}

// Mailer delivers owner notifications. Implementations are best-effort:
// the funding transaction has already committed by the time they run.
type Mailer interface {
	SendOfferNotice(ctx context.Context, to string, notice OfferNotice) error
}

// SMTPMailer sends plain-text notices through an SMTP relay.
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTPMailer creates a mailer talking to the relay at addr (host:port).
func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from}
}

func (m *SMTPMailer) SendOfferNotice(ctx context.Context, to string, notice OfferNotice) error {
	if to == "" {
		return fmt.Errorf("empty recipient")
	}
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: New offer for %q\r\n\r\nSomeone chipped in %s toward your wish #%d.\r\n",
		m.from, to, notice.WishName, notice.Amount, notice.WishID,
	)
	return smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(body))
}

// LogMailer writes the notice to the log instead of sending it. Used when
// no SMTP relay is configured.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a log-only mailer.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendOfferNotice(_ context.Context, to string, notice OfferNotice) error {
	m.logger.Info().
		Str("to", to).
		Int64("wish_id", notice.WishID).
		Str("amount", notice.Amount.String()).
		Int64("from_user_id", notice.FromUserID).
		Msg("offer notice")
	return nil
}
