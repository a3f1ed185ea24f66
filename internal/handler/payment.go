package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/payload"
	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/httpx"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// PaymentHandler exposes the Khalti payment flow over HTTP.
type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger

	// returnURL is where the gateway sends the shopper back after payment.
	returnURL string
}

func NewPaymentHandler(
	paymentUsecase usecase.PaymentUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
	paymentBaseURL string,
) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
		logger:         logger,
		returnURL:      paymentBaseURL + "/api/khalti/complete-khalti-payment",
	}
}

// Initialize handles POST /api/khalti/initialize-khalti.
func (h *PaymentHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req payload.InitializePaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	result, err := h.paymentUsecase.InitializePayment(r.Context(), usecase.InitializePaymentParams{
		OrderID:    req.OrderID,
		TotalPrice: req.TotalPrice,
		WebsiteURL: req.WebsiteURL,
		ReturnURL:  h.returnURL,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Payment initialized", httpx.Envelope{
		"paymentId":  result.PaymentID,
		"pidx":       result.PIDX,
		"paymentUrl": result.PaymentURL,
	})
}

// Complete handles GET /api/khalti/complete-khalti-payment, the gateway's
// return callback. The transaction is verified against the gateway before
// the payment and order records are updated.
func (h *PaymentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	pidx := r.URL.Query().Get("pidx")
	if pidx == "" {
		httpx.Fail(w, http.StatusBadRequest, "Missing pidx")
		return
	}

	pmt, err := h.paymentUsecase.CompletePayment(r.Context(), pidx)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Payment completed", httpx.Envelope{
		"payment": pmt,
	})
}
