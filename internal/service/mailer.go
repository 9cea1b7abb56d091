package service

import "context"

// Mailer delivers the possession-proof messages the recovery flow depends on.
// The reset token is only ever sent to the account's mailbox; the API never
// returns it.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// logMailer is the development Mailer: it logs that a reset was issued
// without exposing the token itself.
type logMailer struct{}

// NewLogMailer returns a Mailer suitable for environments without an SMTP
// relay configured.
func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) SendPasswordReset(_ context.Context, email, _ string) error {
	logJSON(map[string]any{
		"msg":   "password_reset_issued",
		"email": email,
	})
	return nil
}
