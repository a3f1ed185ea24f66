package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/httpx"
)

// respondError maps usecase errors to an HTTP status and error envelope.
// Unrecognized errors are logged and surfaced as a generic internal error so
// storage or dispatch detail never leaks to the caller.
func respondError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var lockedOut *usecase.LockedOutError
	if errors.As(err, &lockedOut) {
		httpx.Fail(w, http.StatusLocked, lockedOut.Error())
		return
	}

	switch {
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		httpx.Fail(w, http.StatusConflict, "User Already Exists!")
	case errors.Is(err, usecase.ErrUserNotFound):
		httpx.Fail(w, http.StatusNotFound, "User Does Not Exist!")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		httpx.Fail(w, http.StatusUnauthorized, "Password Does Not Match!")
	case errors.Is(err, usecase.ErrCodeInvalidOrExpired):
		httpx.Fail(w, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, usecase.ErrCodeDelivery):
		httpx.Fail(w, http.StatusInternalServerError, "Error sending OTP")
	case errors.Is(err, usecase.ErrAlreadyVerified):
		httpx.Fail(w, http.StatusBadRequest, "User is already verified")
	case errors.Is(err, usecase.ErrWeakPassword):
		httpx.Fail(w, http.StatusBadRequest, "Password does not meet the complexity requirements")
	case errors.Is(err, usecase.ErrPasswordReused):
		httpx.Fail(w, http.StatusBadRequest, "New password must not match any of your recent passwords")
	case errors.Is(err, usecase.ErrProductNotFound):
		httpx.Fail(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, usecase.ErrAlreadyInCart):
		httpx.Fail(w, http.StatusConflict, "Product already in cart!")
	case errors.Is(err, usecase.ErrNotInCart):
		httpx.Fail(w, http.StatusNotFound, "Product not found in cart!")
	case errors.Is(err, usecase.ErrAlreadyInWishlist):
		httpx.Fail(w, http.StatusConflict, "Product already in wishlist")
	case errors.Is(err, usecase.ErrNotInWishlist):
		httpx.Fail(w, http.StatusNotFound, "Product not found in wishlist")
	case errors.Is(err, usecase.ErrAlreadyReviewed):
		httpx.Fail(w, http.StatusConflict, "You have already reviewed this product")
	case errors.Is(err, usecase.ErrReviewNotFound):
		httpx.Fail(w, http.StatusNotFound, "Review not found")
	case errors.Is(err, usecase.ErrOrderNotFound):
		httpx.Fail(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, usecase.ErrPaymentNotFound):
		httpx.Fail(w, http.StatusNotFound, "Payment not found")
	case errors.Is(err, usecase.ErrPaymentMismatch):
		httpx.Fail(w, http.StatusBadRequest, "Payment could not be verified")
	default:
		logger.Error().Err(err).Msg("request failed")
		httpx.Fail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
