package payload

type RegisterRequest struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
	Phone    string `json:"phone"    validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	OTP      string `json:"otp"`
}

type VerifyRegisterOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"   validate:"required"`
}

type VerifyLoginOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"   validate:"required"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	OTP      string `json:"otp"      validate:"required"`
	Password string `json:"password" validate:"required,strongpassword"`
}

type UpdateProfileRequest struct {
	UserName       *string `json:"userName"`
	Email          *string `json:"email"          validate:"omitempty,email"`
	Phone          *string `json:"phone"`
	ProfilePicture *string `json:"profilePicture"`
}
