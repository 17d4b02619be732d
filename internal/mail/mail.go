package mail

import "context"

// Sender delivers verification codes. Kept behind an interface so usecases can
// be tested without an SMTP server.
type Sender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
