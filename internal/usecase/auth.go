package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/config"
	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
	"github.com/glowcart/glowcart-api/shared/auth"
	"github.com/glowcart/glowcart-api/shared/otp"
	"github.com/glowcart/glowcart-api/shared/security"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// AuthUsecase defines the interface for authentication-related use cases:
// registration, email verification, and the two-step login flow.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) error
	VerifyEmail(ctx context.Context, email, code string) error
	ResendVerificationCode(ctx context.Context, email string) error
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
	VerifyLoginCode(ctx context.Context, email, code string) (*LoginResult, error)
	ResendLoginCode(ctx context.Context, email string) error
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	UserName string
	Email    string
	Password string
	Phone    string
}

// LoginParams defines the parameters for user login. Code is the optional
// second-factor passcode; when empty, a successful password check triggers
// passcode delivery instead of issuing a token.
type LoginParams struct {
	Email    string
	Password string
	Code     string
}

// LoginResult is the outcome of a login attempt that got past the password
// check. Either RequireCode is true, or Token and User are set.
type LoginResult struct {
	RequireCode bool
	Token       string
	User        *model.User
}

const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute

	verificationCodeTTL = 10 * time.Minute
	loginCodeTTL        = 5 * time.Minute
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyVerified    = errors.New("user is already verified")
	ErrWeakPassword       = errors.New("password does not meet the complexity requirements")

	// ErrCodeInvalidOrExpired covers both a wrong passcode and an expired
	// one. The two cases are deliberately indistinguishable to the caller so
	// a guesser learns nothing about whether a code is still live.
	ErrCodeInvalidOrExpired = errors.New("invalid or expired code")

	// ErrCodeDelivery means the account mutation succeeded but the passcode
	// could not be dispatched; the caller should offer a resend path.
	ErrCodeDelivery = errors.New("failed to deliver code")
)

// LockedOutError is returned while an account's lockout window is still open.
type LockedOutError struct {
	Until time.Time
}

func (e *LockedOutError) Error() string {
	remaining := time.Until(e.Until).Round(time.Second)
	return fmt.Sprintf("account locked, try again in %s", remaining)
}

type authUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	mailer   CodeMailer
	tokenCfg *config.TokenConfig
	locks    *keyedMutex
	now      func() time.Time
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	mailer CodeMailer,
	tokenCfg *config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		mailer:   mailer,
		tokenCfg: tokenCfg,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) error {
	if !validation.StrongPassword(params.Password) {
		return ErrWeakPassword
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		UserName:     params.UserName,
		Email:        params.Email,
		Phone:        params.Phone,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		IsVerified:   false,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}

		return err
	}

	return u.issueVerificationCode(ctx, user)
}

func (u *authUsecase) VerifyEmail(ctx context.Context, email, code string) error {
	unlock := u.locks.Lock(email)
	defer unlock()

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// An unknown email and a wrong code look the same to the caller.
			return ErrCodeInvalidOrExpired
		}

		return err
	}

	if !codeMatches(user.VerificationOTP, user.OTPExpires, code, u.now()) {
		return ErrCodeInvalidOrExpired
	}

	return u.userRepo.MarkVerified(ctx, user.ID.Hex())
}

func (u *authUsecase) ResendVerificationCode(ctx context.Context, email string) error {
	unlock := u.locks.Lock(email)
	defer unlock()

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	return u.issueVerificationCode(ctx, user)
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	unlock := u.locks.Lock(params.Email)
	defer unlock()

	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	now := u.now()

	if user.FailedLoginAttempts >= maxFailedLogins {
		if user.LockoutTime != nil && user.LockoutTime.After(now) {
			return nil, &LockedOutError{Until: *user.LockoutTime}
		}

		// Lockout expired: reset the counter before evaluating the password.
		if err := u.userRepo.ClearLoginFailures(ctx, user.ID.Hex()); err != nil {
			return nil, err
		}
		user.FailedLoginAttempts = 0
		user.LockoutTime = nil
	}

	ok, err := security.VerifyPassword(params.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		attempts := user.FailedLoginAttempts + 1

		var lockout *time.Time
		if attempts >= maxFailedLogins {
			until := now.Add(lockoutDuration)
			lockout = &until
		}

		if err := u.userRepo.RecordLoginFailure(ctx, user.ID.Hex(), attempts, lockout); err != nil {
			return nil, err
		}

		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 {
		if err := u.userRepo.ClearLoginFailures(ctx, user.ID.Hex()); err != nil {
			return nil, err
		}
	}

	if params.Code == "" {
		// A still-valid code means a delivery already happened; do not mint
		// another one for every repeated login call.
		if codeActive(user.LoginOTP, user.LoginOTPExpires, now) {
			return &LoginResult{RequireCode: true}, nil
		}

		if err := u.issueLoginCode(ctx, user); err != nil {
			return nil, err
		}

		return &LoginResult{RequireCode: true}, nil
	}

	if !codeMatches(user.LoginOTP, user.LoginOTPExpires, params.Code, now) {
		return nil, ErrCodeInvalidOrExpired
	}

	return u.completeLogin(ctx, user)
}

func (u *authUsecase) VerifyLoginCode(ctx context.Context, email, code string) (*LoginResult, error) {
	unlock := u.locks.Lock(email)
	defer unlock()

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCodeInvalidOrExpired
		}

		return nil, err
	}

	if !codeMatches(user.LoginOTP, user.LoginOTPExpires, code, u.now()) {
		return nil, ErrCodeInvalidOrExpired
	}

	// The standalone verification path also wipes any failed-login state.
	if user.FailedLoginAttempts > 0 || user.LockoutTime != nil {
		if err := u.userRepo.ClearLoginFailures(ctx, user.ID.Hex()); err != nil {
			return nil, err
		}
	}

	return u.completeLogin(ctx, user)
}

func (u *authUsecase) ResendLoginCode(ctx context.Context, email string) error {
	unlock := u.locks.Lock(email)
	defer unlock()

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	return u.issueLoginCode(ctx, user)
}

func (u *authUsecase) completeLogin(ctx context.Context, user *model.User) (*LoginResult, error) {
	if err := u.userRepo.ClearLoginCode(ctx, user.ID.Hex()); err != nil {
		return nil, err
	}

	token, err := u.jwtAuth.GenerateSessionToken(user.ID.Hex(), user.IsAdmin, u.tokenCfg.SessionExpiresIn)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

func (u *authUsecase) issueVerificationCode(ctx context.Context, user *model.User) error {
	code, err := otp.GenerateCode(otp.CodeLength)
	if err != nil {
		return err
	}

	expires := u.now().Add(verificationCodeTTL)
	if err := u.userRepo.SetVerificationCode(ctx, user.ID.Hex(), code, expires); err != nil {
		return err
	}

	if err := u.mailer.SendVerificationCode(user.Email, code); err != nil {
		return fmt.Errorf("%w: %w", ErrCodeDelivery, err)
	}

	return nil
}

func (u *authUsecase) issueLoginCode(ctx context.Context, user *model.User) error {
	code, err := otp.GenerateCode(otp.CodeLength)
	if err != nil {
		return err
	}

	expires := u.now().Add(loginCodeTTL)
	if err := u.userRepo.SetLoginCode(ctx, user.ID.Hex(), code, expires); err != nil {
		return err
	}

	if err := u.mailer.SendLoginCode(user.Email, code); err != nil {
		return fmt.Errorf("%w: %w", ErrCodeDelivery, err)
	}

	return nil
}

// codeMatches reports whether the stored passcode pair is active and equal to
// the candidate.
func codeMatches(stored *string, expires *time.Time, candidate string, now time.Time) bool {
	return codeActive(stored, expires, now) && *stored == candidate && candidate != ""
}

// codeActive reports whether a passcode pair is set and unexpired.
func codeActive(stored *string, expires *time.Time, now time.Time) bool {
	return stored != nil && expires != nil && expires.After(now)
}
