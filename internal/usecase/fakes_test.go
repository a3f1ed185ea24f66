package usecase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
)

// fakeUserRepository is an in-memory stand-in for the mongo-backed user
// repository. It mirrors the repository contract closely enough for the auth
// flows: unknown lookups return mongo.ErrNoDocuments and duplicate emails
// fail with a duplicate key error the way the unique index would.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*model.User)}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID.Hex()] = user

	return user, nil
}

func (f *fakeUserRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepository) GetUserByPhone(_ context.Context, phone string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepository) UpdateProfile(
	_ context.Context,
	id string,
	params repository.UpdateProfileParams,
) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.UserName != nil {
		user.UserName = *params.UserName
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Phone != nil {
		user.Phone = *params.Phone
	}
	if params.ProfilePicture != nil {
		user.ProfilePicture = *params.ProfilePicture
	}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) SetVerificationCode(_ context.Context, id, code string, expires time.Time) error {
	return f.mutate(id, func(u *model.User) {
		u.VerificationOTP = &code
		u.OTPExpires = &expires
	})
}

func (f *fakeUserRepository) MarkVerified(_ context.Context, id string) error {
	return f.mutate(id, func(u *model.User) {
		u.IsVerified = true
		u.VerificationOTP = nil
		u.OTPExpires = nil
	})
}

func (f *fakeUserRepository) SetLoginCode(_ context.Context, id, code string, expires time.Time) error {
	return f.mutate(id, func(u *model.User) {
		u.LoginOTP = &code
		u.LoginOTPExpires = &expires
	})
}

func (f *fakeUserRepository) ClearLoginCode(_ context.Context, id string) error {
	return f.mutate(id, func(u *model.User) {
		u.LoginOTP = nil
		u.LoginOTPExpires = nil
	})
}

func (f *fakeUserRepository) SetResetCode(_ context.Context, id, code string, expires time.Time) error {
	return f.mutate(id, func(u *model.User) {
		u.ResetPasswordOTP = &code
		u.ResetPasswordExpires = &expires
	})
}

func (f *fakeUserRepository) UpdatePassword(_ context.Context, id, passwordHash string, history []string) error {
	return f.mutate(id, func(u *model.User) {
		u.PasswordHash = passwordHash
		u.PasswordHistory = history
		u.ResetPasswordOTP = nil
		u.ResetPasswordExpires = nil
	})
}

func (f *fakeUserRepository) RecordLoginFailure(_ context.Context, id string, attempts int, lockout *time.Time) error {
	return f.mutate(id, func(u *model.User) {
		u.FailedLoginAttempts = attempts
		u.LockoutTime = lockout
	})
}

func (f *fakeUserRepository) ClearLoginFailures(_ context.Context, id string) error {
	return f.mutate(id, func(u *model.User) {
		u.FailedLoginAttempts = 0
		u.LockoutTime = nil
	})
}

func (f *fakeUserRepository) mutate(id string, fn func(*model.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	fn(user)
	user.UpdatedAt = time.Now()

	return nil
}

// fakeMailer records delivered passcodes instead of talking to an SMTP
// server. A non-nil err makes every delivery fail.
type fakeMailer struct {
	mu  sync.Mutex
	err error

	verificationCodes map[string]string
	loginCodes        map[string]string
	resetCodes        map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		verificationCodes: make(map[string]string),
		loginCodes:        make(map[string]string),
		resetCodes:        make(map[string]string),
	}
}

func (f *fakeMailer) SendVerificationCode(to, code string) error {
	return f.record(f.verificationCodes, to, code)
}

func (f *fakeMailer) SendLoginCode(to, code string) error {
	return f.record(f.loginCodes, to, code)
}

func (f *fakeMailer) SendPasswordResetCode(to, code string) error {
	return f.record(f.resetCodes, to, code)
}

func (f *fakeMailer) record(dst map[string]string, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	dst[to] = code
	return nil
}

func (f *fakeMailer) lastLoginCode(to string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCodes[to]
}

func (f *fakeMailer) lastVerificationCode(to string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verificationCodes[to]
}

func (f *fakeMailer) lastResetCode(to string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resetCodes[to]
}

// fakeTexter records SMS passcodes by phone number.
type fakeTexter struct {
	mu    sync.Mutex
	codes map[string]string
}

func newFakeTexter() *fakeTexter {
	return &fakeTexter{codes: make(map[string]string)}
}

func (f *fakeTexter) SendCode(_ context.Context, phone, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.codes[phone] = code
	return nil
}
