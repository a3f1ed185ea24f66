package mailer

import "fmt"

// SendVerificationCode emails the registration verification passcode.
func (m *Mailer) SendVerificationCode(to, code string) error {
	htmlBody := fmt.Sprintf(`
		<h1>Email Verification</h1>
		<p>Your code for email verification is: <strong>%s</strong></p>
		<p>This code will expire in 10 minutes.</p>
	`, code)

	return m.SendHTML([]string{to}, "Email Verification Code", htmlBody)
}

// SendLoginCode emails the second-factor login passcode.
func (m *Mailer) SendLoginCode(to, code string) error {
	htmlBody := fmt.Sprintf(`
		<h1>Login Verification</h1>
		<p>Your code for login verification is: <strong>%s</strong></p>
		<p>This code will expire in 5 minutes.</p>
		<p>If you didn't request this login, please ignore this email.</p>
	`, code)

	return m.SendHTML([]string{to}, "Login Verification Code", htmlBody)
}

// SendPasswordResetCode emails the password reset passcode.
func (m *Mailer) SendPasswordResetCode(to, code string) error {
	htmlBody := fmt.Sprintf(`
		<h1>Password Reset</h1>
		<p>Your code for resetting your password is: <strong>%s</strong></p>
		<p>This code will expire in 10 minutes.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, code)

	return m.SendHTML([]string{to}, "Password Reset Code", htmlBody)
}
