package usecase

import "context"

// CodeMailer delivers one-time passcodes over email. Implemented by
// shared/mailer.
type CodeMailer interface {
	SendVerificationCode(to, code string) error
	SendLoginCode(to, code string) error
	SendPasswordResetCode(to, code string) error
}

// CodeTexter delivers one-time passcodes over SMS. Implemented by shared/sms.
type CodeTexter interface {
	SendCode(ctx context.Context, phone, code string) error
}
