package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowcart/glowcart-api/internal/config"
	"github.com/glowcart/glowcart-api/shared/auth"
	"github.com/glowcart/glowcart-api/shared/security"
)

const (
	testEmail    = "jane@example.com"
	testPassword = "Sup3rSecret!"
)

type authFixture struct {
	usecase *authUsecase
	repo    *fakeUserRepository
	mailer  *fakeMailer
	jwtAuth auth.JWTAuthenticator
	clock   *time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	repo := newFakeUserRepository()
	mailer := newFakeMailer()
	jwtAuth := auth.NewJWTAuthenticator("test-secret", "glowcart-api", "glowcart-api")
	tokenCfg := &config.TokenConfig{
		Secret:           "test-secret",
		Issuer:           "glowcart-api",
		SessionExpiresIn: time.Hour,
	}

	u := NewAuthUsecase(repo, jwtAuth, mailer, tokenCfg).(*authUsecase)

	now := time.Now()
	u.now = func() time.Time { return now }

	return &authFixture{
		usecase: u,
		repo:    repo,
		mailer:  mailer,
		jwtAuth: jwtAuth,
		clock:   &now,
	}
}

func (f *authFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

// registerVerified registers the test user and completes email verification.
func (f *authFixture) registerVerified(t *testing.T) {
	t.Helper()

	require.NoError(t, f.usecase.Register(context.Background(), RegisterParams{
		UserName: "jane",
		Email:    testEmail,
		Password: testPassword,
		Phone:    "9800000000",
	}))

	code := f.mailer.lastVerificationCode(testEmail)
	require.NotEmpty(t, code)
	require.NoError(t, f.usecase.VerifyEmail(context.Background(), testEmail, code))
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.usecase.Register(context.Background(), RegisterParams{
		UserName: "jane",
		Email:    testEmail,
		Password: testPassword,
		Phone:    "9800000000",
	}))

	user, err := f.repo.GetUserByEmail(context.Background(), testEmail)
	require.NoError(t, err)

	assert.NotEqual(t, testPassword, user.PasswordHash)
	assert.False(t, user.IsVerified)

	ok, err := security.VerifyPassword(testPassword, user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	f := newAuthFixture(t)

	err := f.usecase.Register(context.Background(), RegisterParams{
		UserName: "jane",
		Email:    testEmail,
		Password: "password",
		Phone:    "9800000000",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	params := RegisterParams{
		UserName: "jane",
		Email:    testEmail,
		Password: testPassword,
		Phone:    "9800000000",
	}

	require.NoError(t, f.usecase.Register(context.Background(), params))
	assert.ErrorIs(t, f.usecase.Register(context.Background(), params), ErrUserAlreadyExists)
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.usecase.Register(ctx, RegisterParams{
		UserName: "jane",
		Email:    testEmail,
		Password: testPassword,
		Phone:    "9800000000",
	}))

	code := f.mailer.lastVerificationCode(testEmail)
	require.NotEmpty(t, code)

	// A wrong code and an unknown email produce the same error.
	assert.ErrorIs(t, f.usecase.VerifyEmail(ctx, testEmail, "000000"), ErrCodeInvalidOrExpired)
	assert.ErrorIs(t, f.usecase.VerifyEmail(ctx, "nobody@example.com", code), ErrCodeInvalidOrExpired)

	require.NoError(t, f.usecase.VerifyEmail(ctx, testEmail, code))

	user, err := f.repo.GetUserByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.usecase.Register(ctx, RegisterParams{
		UserName: "jane",
		Email:    testEmail,
		Password: testPassword,
		Phone:    "9800000000",
	}))

	code := f.mailer.lastVerificationCode(testEmail)
	f.advance(verificationCodeTTL + time.Minute)

	// The expired-code error is indistinguishable from the wrong-code one.
	assert.ErrorIs(t, f.usecase.VerifyEmail(ctx, testEmail, code), ErrCodeInvalidOrExpired)
}

func TestLoginFullFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t)

	// Step one: password only. A passcode goes out, no token yet.
	result, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.True(t, result.RequireCode)
	assert.Empty(t, result.Token)

	code := f.mailer.lastLoginCode(testEmail)
	require.NotEmpty(t, code)

	// Step two: password plus passcode completes the login.
	result, err = f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword, Code: code})
	require.NoError(t, err)
	assert.False(t, result.RequireCode)
	require.NotEmpty(t, result.Token)

	claims, err := f.jwtAuth.ValidateSessionToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.Hex(), claims.UserID)
	assert.False(t, claims.IsAdmin)

	// The passcode is single-use.
	_, err = f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword, Code: code})
	assert.ErrorIs(t, err, ErrCodeInvalidOrExpired)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t)

	_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: "Wr0ngPass!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := f.repo.GetUserByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, 1, user.FailedLoginAttempts)
}

func TestLoginLockout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t)

	for i := 0; i < maxFailedLogins; i++ {
		_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: "Wr0ngPass!"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// Even the correct password is refused while the lockout is open.
	_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	var lockedOut *LockedOutError
	require.ErrorAs(t, err, &lockedOut)
	assert.True(t, lockedOut.Until.After(*f.clock))

	// Just before the window closes it is still locked.
	f.advance(lockoutDuration - time.Second)
	_, err = f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	assert.ErrorAs(t, err, &lockedOut)

	// Once the window passes the correct password works and the counter
	// starts over.
	f.advance(2 * time.Second)
	result, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.True(t, result.RequireCode)

	user, err := f.repo.GetUserByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, 0, user.FailedLoginAttempts)
	assert.Nil(t, user.LockoutTime)
}

func TestLoginLockoutResetAllowsFreshFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t)

	for i := 0; i < maxFailedLogins; i++ {
		_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: "Wr0ngPass!"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	f.advance(lockoutDuration + time.Second)

	// After expiry a wrong password counts as the first failure of a new
	// window, not the sixth of the old one.
	_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: "Wr0ngPass!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := f.repo.GetUserByEmail(ctx, testEmail)
	require.NoError(t, err)
	assert.Equal(t, 1, user.FailedLoginAttempts)
}

func TestLoginCodeExpiry(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t)

	_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	code := f.mailer.lastLoginCode(testEmail)

	f.advance(loginCodeTTL + time.Second)

	_, err = f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword, Code: code})
	assert.ErrorIs(t, err, ErrCodeInvalidOrExpired)
}

func TestLoginDoesNotRemintActiveCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t)

	_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	first := f.mailer.lastLoginCode(testEmail)

	_, err = f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	require.NoError(t, err)

	user, err := f.repo.GetUserByEmail(ctx, testEmail)
	require.NoError(t, err)
	require.NotNil(t, user.LoginOTP)
	assert.Equal(t, first, *user.LoginOTP)
}

func TestVerifyLoginCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t)

	_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	code := f.mailer.lastLoginCode(testEmail)

	result, err := f.usecase.VerifyLoginCode(ctx, testEmail, code)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	// Used up.
	_, err = f.usecase.VerifyLoginCode(ctx, testEmail, code)
	assert.ErrorIs(t, err, ErrCodeInvalidOrExpired)
}

func TestResendLoginCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t)

	_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	first := f.mailer.lastLoginCode(testEmail)

	require.NoError(t, f.usecase.ResendLoginCode(ctx, testEmail))
	second := f.mailer.lastLoginCode(testEmail)

	// The resent code replaces the stored one.
	user, err := f.repo.GetUserByEmail(ctx, testEmail)
	require.NoError(t, err)
	require.NotNil(t, user.LoginOTP)
	assert.Equal(t, second, *user.LoginOTP)

	if first != second {
		_, err = f.usecase.VerifyLoginCode(ctx, testEmail, first)
		assert.ErrorIs(t, err, ErrCodeInvalidOrExpired)
	}
}

func TestLoginDeliveryFailure(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.registerVerified(t)

	f.mailer.err = errors.New("smtp unreachable")

	_, err := f.usecase.Login(ctx, LoginParams{Email: testEmail, Password: testPassword})
	assert.ErrorIs(t, err, ErrCodeDelivery)
}

func TestResendVerificationCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.usecase.Register(ctx, RegisterParams{
		UserName: "jane",
		Email:    testEmail,
		Password: testPassword,
		Phone:    "9800000000",
	}))

	require.NoError(t, f.usecase.ResendVerificationCode(ctx, testEmail))
	code := f.mailer.lastVerificationCode(testEmail)
	require.NoError(t, f.usecase.VerifyEmail(ctx, testEmail, code))

	assert.ErrorIs(t, f.usecase.ResendVerificationCode(ctx, testEmail), ErrAlreadyVerified)
	assert.ErrorIs(t, f.usecase.ResendVerificationCode(ctx, "nobody@example.com"), ErrUserNotFound)
}
