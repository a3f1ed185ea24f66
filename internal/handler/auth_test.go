package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// stubAuthUsecase returns canned results so handler tests only exercise the
// HTTP layer: decoding, validation and error mapping.
type stubAuthUsecase struct {
	registerErr error
	loginResult *usecase.LoginResult
	loginErr    error
}

func (s *stubAuthUsecase) Register(context.Context, usecase.RegisterParams) error {
	return s.registerErr
}

func (s *stubAuthUsecase) VerifyEmail(context.Context, string, string) error { return nil }

func (s *stubAuthUsecase) ResendVerificationCode(context.Context, string) error { return nil }

func (s *stubAuthUsecase) Login(context.Context, usecase.LoginParams) (*usecase.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthUsecase) VerifyLoginCode(context.Context, string, string) (*usecase.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthUsecase) ResendLoginCode(context.Context, string) error { return nil }

func newTestAuthHandler(t *testing.T, stub *stubAuthUsecase) *AuthHandler {
	t.Helper()

	validator, err := validation.New()
	require.NoError(t, err)

	logger := zerolog.New(os.Stderr)
	return NewAuthHandler(stub, nil, validator, &logger)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec, envelope
}

func TestAuthHandlerRegister(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthUsecase{})

	rec, envelope := postJSON(t, h.Register, map[string]any{
		"userName": "jane",
		"email":    "jane@example.com",
		"password": "Sup3rSecret!",
		"phone":    "9800000000",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, envelope["success"])
}

func TestAuthHandlerRegisterValidation(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthUsecase{})

	rec, envelope := postJSON(t, h.Register, map[string]any{
		"userName": "jane",
		"email":    "not-an-email",
		"password": "weak",
		"phone":    "9800000000",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, envelope["success"])

	fields, ok := envelope["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthUsecase{registerErr: usecase.ErrUserAlreadyExists})

	rec, envelope := postJSON(t, h.Register, map[string]any{
		"userName": "jane",
		"email":    "jane@example.com",
		"password": "Sup3rSecret!",
		"phone":    "9800000000",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestAuthHandlerLoginRequiresCode(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthUsecase{
		loginResult: &usecase.LoginResult{RequireCode: true},
	})

	rec, envelope := postJSON(t, h.Login, map[string]any{
		"email":    "jane@example.com",
		"password": "Sup3rSecret!",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["requireOTP"])
	assert.NotContains(t, envelope, "token")
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthUsecase{
		loginResult: &usecase.LoginResult{
			Token: "signed-token",
			User:  &model.User{UserName: "jane", Email: "jane@example.com"},
		},
	})

	rec, envelope := postJSON(t, h.Login, map[string]any{
		"email":    "jane@example.com",
		"password": "Sup3rSecret!",
		"otp":      "123456",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed-token", envelope["token"])

	user, ok := envelope["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")
}

func TestAuthHandlerLoginLockedOut(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthUsecase{
		loginErr: &usecase.LockedOutError{Until: time.Now().Add(10 * time.Minute)},
	})

	rec, envelope := postJSON(t, h.Login, map[string]any{
		"email":    "jane@example.com",
		"password": "Sup3rSecret!",
	})

	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Contains(t, envelope["message"], "account locked")
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	h := newTestAuthHandler(t, &stubAuthUsecase{loginErr: usecase.ErrInvalidCredentials})

	rec, _ := postJSON(t, h.Login, map[string]any{
		"email":    "jane@example.com",
		"password": "Wr0ngPass!",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
