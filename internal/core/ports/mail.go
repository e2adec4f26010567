package ports

import "context"

// Mail purposes, used for dedup keys and metrics labels.
const (
	MailPurposeRegister = "register"
	MailPurposeResend   = "resend"
	MailPurposeReset    = "reset"
)

// OTPMail is a single one-time-code delivery.
type OTPMail struct {
	To      string
	Subject string
	Body    string
	Purpose string
	Code    string
}

// Mailer delivers a single OTP mail. Implementations are called from the
// dispatcher workers, never from request handlers.
type Mailer interface {
	Send(ctx context.Context, mail OTPMail) error
}
