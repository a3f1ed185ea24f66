package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/payload"
	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/httpx"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// AuthHandler exposes registration, the two-step login flow and the
// forgotten-password flow over HTTP.
type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	resetUsecase usecase.PasswordResetUsecase
	validator    *validation.Validator
	logger       *zerolog.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	resetUsecase usecase.PasswordResetUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		resetUsecase: resetUsecase,
		validator:    validator,
		logger:       logger,
	}
}

// Register handles POST /api/user/create.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusCreated, "User created. Please verify your email with the OTP sent to you.", nil)
}

// Login handles POST /api/user/login. Without an OTP in the body a correct
// password triggers passcode delivery; with one it completes the login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
		Code:     req.OTP,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if result.RequireCode {
		httpx.Success(w, http.StatusOK, "OTP sent to your email. Please verify to complete login.", httpx.Envelope{
			"requireOTP": true,
		})
		return
	}

	httpx.Success(w, http.StatusOK, "Login successful", httpx.Envelope{
		"token": result.Token,
		"user":  result.User.Public(),
	})
}

// VerifyLoginOTP handles POST /api/user/verify_login_otp.
func (h *AuthHandler) VerifyLoginOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyLoginOTPRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	result, err := h.authUsecase.VerifyLoginCode(r.Context(), req.Email, req.OTP)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Login successful", httpx.Envelope{
		"token": result.Token,
		"user":  result.User.Public(),
	})
}

// ResendLoginOTP handles POST /api/user/resend_login_otp.
func (h *AuthHandler) ResendLoginOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.ResendOTPRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	if err := h.authUsecase.ResendLoginCode(r.Context(), req.Email); err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "OTP resent to your email", nil)
}

// VerifyRegisterOTP handles POST /api/user/verify_register_otp.
func (h *AuthHandler) VerifyRegisterOTP(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyRegisterOTPRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	if err := h.authUsecase.VerifyEmail(r.Context(), req.Email, req.OTP); err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Email verified. You can now log in.", nil)
}

// ForgotPassword handles POST /api/user/forgot_password. The passcode goes
// out by email when an email is supplied, by SMS when a phone number is.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	var err error
	switch {
	case req.Email != "":
		err = h.resetUsecase.RequestPasswordReset(r.Context(), req.Email)
	case req.Phone != "":
		err = h.resetUsecase.RequestPasswordResetSMS(r.Context(), req.Phone)
	default:
		httpx.Fail(w, http.StatusBadRequest, "Either email or phone is required")
		return
	}
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Password reset OTP sent", nil)
}

// ResetPassword handles POST /api/user/verify_otp: it checks the reset
// passcode and applies the new password in one step.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	err := h.resetUsecase.ResetPassword(r.Context(), usecase.ResetPasswordParams{
		Email:       req.Email,
		Code:        req.OTP,
		NewPassword: req.Password,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Password reset successful", nil)
}
