package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/middleware"
	"github.com/glowcart/glowcart-api/internal/payload"
	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/httpx"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// ReviewHandler exposes product ratings and reviews over HTTP.
type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
	validator     *validation.Validator
	logger        *zerolog.Logger
}

func NewReviewHandler(
	reviewUsecase usecase.ReviewUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		validator:     validator,
		logger:        logger,
	}
}

// Create handles POST /api/review/post_reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	var req payload.CreateReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	review, err := h.reviewUsecase.CreateReview(r.Context(), claims.UserID, req.ProductID, req.Rating, req.Review)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusCreated, "Review posted", httpx.Envelope{
		"review": review,
	})
}

// ListByProduct handles GET /api/review/get_reviews/{id}.
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewUsecase.GetReviewsByProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Reviews fetched", httpx.Envelope{
		"reviews": reviews,
	})
}

// GetOwn handles GET /api/review/get_reviews_by_user_and_product/{id}: the
// authenticated user's review of the given product.
func (h *ReviewHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	review, err := h.reviewUsecase.GetReviewByUserAndProduct(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Review fetched", httpx.Envelope{
		"review": review,
	})
}

// AverageRating handles GET /api/review/get_average_rating/{id}.
func (h *ReviewHandler) AverageRating(w http.ResponseWriter, r *http.Request) {
	average, count, err := h.reviewUsecase.GetAverageRating(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Average rating fetched", httpx.Envelope{
		"averageRating": average,
		"reviewCount":   count,
	})
}

// Update handles PUT /api/review/update_reviews/{id}: the authenticated user
// edits their own review of the given product.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	var req payload.UpdateReviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	review, err := h.reviewUsecase.UpdateReview(r.Context(), claims.UserID, chi.URLParam(r, "id"), req.Rating, req.Review)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Review updated", httpx.Envelope{
		"review": review,
	})
}
