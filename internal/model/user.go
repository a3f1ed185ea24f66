package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PasswordHistoryLimit bounds how many prior password hashes are retained on
// a user record. The oldest entry is evicted first.
const PasswordHistoryLimit = 5

// User represents a customer or admin account. The one-time passcode pairs
// are nullable: a nil code means no code is active for that flow, and setting
// a new code supersedes the previous one for the same flow.
type User struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	UserName       string        `bson:"user_name"`
	Email          string        `bson:"email"`
	Phone          string        `bson:"phone"`
	PasswordHash   string        `bson:"password_hash"`
	IsAdmin        bool          `bson:"is_admin"`
	IsVerified     bool          `bson:"is_verified"`
	ProfilePicture string        `bson:"profile_picture,omitempty"`

	VerificationOTP *string    `bson:"verification_otp"`
	OTPExpires      *time.Time `bson:"otp_expires"`

	LoginOTP        *string    `bson:"login_otp"`
	LoginOTPExpires *time.Time `bson:"login_otp_expires"`

	ResetPasswordOTP     *string    `bson:"reset_password_otp"`
	ResetPasswordExpires *time.Time `bson:"reset_password_expires"`

	FailedLoginAttempts int        `bson:"failed_login_attempts"`
	LockoutTime         *time.Time `bson:"lockout_time"`

	PasswordHistory []string `bson:"password_history"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// PublicUser is the subset of user fields safe to return to callers. The
// password hash and passcode fields never leave the service.
type PublicUser struct {
	ID             string `json:"id"`
	UserName       string `json:"userName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	IsAdmin        bool   `json:"isAdmin"`
	IsVerified     bool   `json:"isVerified"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Public converts a User to its caller-facing representation.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID.Hex(),
		UserName:       u.UserName,
		Email:          u.Email,
		Phone:          u.Phone,
		IsAdmin:        u.IsAdmin,
		IsVerified:     u.IsVerified,
		ProfilePicture: u.ProfilePicture,
	}
}
