package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
	"github.com/glowcart/glowcart-api/shared/otp"
	"github.com/glowcart/glowcart-api/shared/security"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// PasswordResetUsecase defines the business logic for the forgotten-password
// flow: requesting a reset passcode and applying a new password with it.
type PasswordResetUsecase interface {
	RequestPasswordReset(ctx context.Context, email string) error
	RequestPasswordResetSMS(ctx context.Context, phone string) error
	ResetPassword(ctx context.Context, params ResetPasswordParams) error
}

// ResetPasswordParams defines the parameters for applying a password reset.
type ResetPasswordParams struct {
	Email       string
	Code        string
	NewPassword string
}

const resetCodeTTL = 10 * time.Minute

// ErrPasswordReused means the new password matches the current password or
// one of the retained previous ones.
var ErrPasswordReused = errors.New("password was used recently")

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	mailer   CodeMailer
	texter   CodeTexter
	locks    *keyedMutex
	now      func() time.Time
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	mailer CodeMailer,
	texter CodeTexter,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		texter:   texter,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	unlock := u.locks.Lock(email)
	defer unlock()

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	code, err := u.issueResetCode(ctx, user)
	if err != nil {
		return err
	}

	if err := u.mailer.SendPasswordResetCode(user.Email, code); err != nil {
		return fmt.Errorf("%w: %w", ErrCodeDelivery, err)
	}

	return nil
}

func (u *passwordResetUsecase) RequestPasswordResetSMS(ctx context.Context, phone string) error {
	user, err := u.userRepo.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	unlock := u.locks.Lock(user.Email)
	defer unlock()

	code, err := u.issueResetCode(ctx, user)
	if err != nil {
		return err
	}

	if err := u.texter.SendCode(ctx, user.Phone, code); err != nil {
		return fmt.Errorf("%w: %w", ErrCodeDelivery, err)
	}

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, params ResetPasswordParams) error {
	unlock := u.locks.Lock(params.Email)
	defer unlock()

	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	if !codeMatches(user.ResetPasswordOTP, user.ResetPasswordExpires, params.Code, u.now()) {
		return ErrCodeInvalidOrExpired
	}

	if !validation.StrongPassword(params.NewPassword) {
		return ErrWeakPassword
	}

	// The new password must differ from the current one and from every
	// retained previous hash.
	priorHashes := append([]string{user.PasswordHash}, user.PasswordHistory...)
	for _, hash := range priorHashes {
		match, err := security.VerifyPassword(params.NewPassword, hash)
		if err != nil {
			return err
		}
		if match {
			return ErrPasswordReused
		}
	}

	newHash, err := security.HashPassword(params.NewPassword)
	if err != nil {
		return err
	}

	history := append(user.PasswordHistory, user.PasswordHash)
	if len(history) > model.PasswordHistoryLimit {
		history = history[len(history)-model.PasswordHistoryLimit:]
	}

	return u.userRepo.UpdatePassword(ctx, user.ID.Hex(), newHash, history)
}

func (u *passwordResetUsecase) issueResetCode(ctx context.Context, user *model.User) (string, error) {
	code, err := otp.GenerateCode(otp.CodeLength)
	if err != nil {
		return "", err
	}

	expires := u.now().Add(resetCodeTTL)
	if err := u.userRepo.SetResetCode(ctx, user.ID.Hex(), code, expires); err != nil {
		return "", err
	}

	return code, nil
}
