package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/shared/security"
)

type resetFixture struct {
	usecase *passwordResetUsecase
	repo    *fakeUserRepository
	mailer  *fakeMailer
	texter  *fakeTexter
	clock   *time.Time
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	repo := newFakeUserRepository()
	mailer := newFakeMailer()
	texter := newFakeTexter()

	u := NewPasswordResetUsecase(repo, mailer, texter).(*passwordResetUsecase)

	now := time.Now()
	u.now = func() time.Time { return now }

	return &resetFixture{
		usecase: u,
		repo:    repo,
		mailer:  mailer,
		texter:  texter,
		clock:   &now,
	}
}

func (f *resetFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func (f *resetFixture) seedUser(t *testing.T, password string) *model.User {
	t.Helper()

	hash, err := security.HashPassword(password)
	require.NoError(t, err)

	user, err := f.repo.CreateUser(context.Background(), &model.User{
		UserName:     "jane",
		Email:        testEmail,
		Phone:        "9800000000",
		PasswordHash: hash,
		IsVerified:   true,
	})
	require.NoError(t, err)

	return user
}

// resetTo runs the full forgot-password flow to the given new password.
func (f *resetFixture) resetTo(t *testing.T, newPassword string) error {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, f.usecase.RequestPasswordReset(ctx, testEmail))

	return f.usecase.ResetPassword(ctx, ResetPasswordParams{
		Email:       testEmail,
		Code:        f.mailer.lastResetCode(testEmail),
		NewPassword: newPassword,
	})
}

func TestResetPassword(t *testing.T) {
	f := newResetFixture(t)
	f.seedUser(t, testPassword)

	require.NoError(t, f.resetTo(t, "N3wSecret!x"))

	user, err := f.repo.GetUserByEmail(context.Background(), testEmail)
	require.NoError(t, err)

	ok, err := security.VerifyPassword("N3wSecret!x", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// The code is cleared once used.
	assert.Nil(t, user.ResetPasswordOTP)
	assert.Len(t, user.PasswordHistory, 1)
}

func TestResetPasswordWrongOrExpiredCode(t *testing.T) {
	f := newResetFixture(t)
	f.seedUser(t, testPassword)
	ctx := context.Background()

	require.NoError(t, f.usecase.RequestPasswordReset(ctx, testEmail))
	code := f.mailer.lastResetCode(testEmail)

	err := f.usecase.ResetPassword(ctx, ResetPasswordParams{
		Email:       testEmail,
		Code:        "000000",
		NewPassword: "N3wSecret!x",
	})
	assert.ErrorIs(t, err, ErrCodeInvalidOrExpired)

	f.advance(resetCodeTTL + time.Minute)

	err = f.usecase.ResetPassword(ctx, ResetPasswordParams{
		Email:       testEmail,
		Code:        code,
		NewPassword: "N3wSecret!x",
	})
	assert.ErrorIs(t, err, ErrCodeInvalidOrExpired)
}

func TestResetPasswordRejectsReuse(t *testing.T) {
	f := newResetFixture(t)
	f.seedUser(t, testPassword)

	// Reusing the current password is refused.
	assert.ErrorIs(t, f.resetTo(t, testPassword), ErrPasswordReused)

	require.NoError(t, f.resetTo(t, "N3wSecret!1"))
	require.NoError(t, f.resetTo(t, "N3wSecret!2"))

	// Both retained previous passwords are refused too.
	assert.ErrorIs(t, f.resetTo(t, testPassword), ErrPasswordReused)
	assert.ErrorIs(t, f.resetTo(t, "N3wSecret!1"), ErrPasswordReused)
}

func TestResetPasswordHistoryBounded(t *testing.T) {
	f := newResetFixture(t)
	f.seedUser(t, testPassword)
	ctx := context.Background()

	for i := 1; i <= model.PasswordHistoryLimit+2; i++ {
		require.NoError(t, f.resetTo(t, fmt.Sprintf("N3wSecret!%d", i)))
	}

	user, err := f.repo.GetUserByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Len(t, user.PasswordHistory, model.PasswordHistoryLimit)

	// The oldest entries fell out of the window, so those passwords may be
	// used again.
	require.NoError(t, f.resetTo(t, testPassword))

	// The newest prior password is still inside the window.
	assert.ErrorIs(t, f.resetTo(t, fmt.Sprintf("N3wSecret!%d", model.PasswordHistoryLimit+2)), ErrPasswordReused)
}

func TestResetPasswordWeakPassword(t *testing.T) {
	f := newResetFixture(t)
	f.seedUser(t, testPassword)

	assert.ErrorIs(t, f.resetTo(t, "password"), ErrWeakPassword)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	f := newResetFixture(t)

	assert.ErrorIs(t, f.usecase.RequestPasswordReset(context.Background(), testEmail), ErrUserNotFound)
}

func TestRequestPasswordResetSMS(t *testing.T) {
	f := newResetFixture(t)
	f.seedUser(t, testPassword)
	ctx := context.Background()

	require.NoError(t, f.usecase.RequestPasswordResetSMS(ctx, "9800000000"))

	code := f.texter.codes["9800000000"]
	require.NotEmpty(t, code)

	require.NoError(t, f.usecase.ResetPassword(ctx, ResetPasswordParams{
		Email:       testEmail,
		Code:        code,
		NewPassword: "N3wSecret!x",
	}))
}
