package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/middleware"
	"github.com/glowcart/glowcart-api/internal/payload"
	"github.com/glowcart/glowcart-api/internal/repository"
	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/httpx"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// maxUploadSize bounds profile picture uploads at 5 MiB.
const maxUploadSize = 5 << 20

// UserHandler exposes the authenticated user's profile over HTTP.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
	uploadDir   string
}

func NewUserHandler(
	userUsecase usecase.UserUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
	uploadDir string,
) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		logger:      logger,
		uploadDir:   uploadDir,
	}
}

// Current handles GET /api/user/current.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	user, err := h.userUsecase.CurrentUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "User fetched", httpx.Envelope{
		"user": user.Public(),
	})
}

// Update handles PUT /api/user/update. Only the supplied fields change.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	var req payload.UpdateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	user, err := h.userUsecase.UpdateProfile(r.Context(), claims.UserID, repository.UpdateProfileParams{
		UserName:       req.UserName,
		Email:          req.Email,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Profile updated", httpx.Envelope{
		"user": user.Public(),
	})
}

// UploadProfilePicture handles POST /api/user/profile_picture. The file is
// stored under the upload directory with a uuid-prefixed name and the user's
// profile picture field is pointed at it.
func (h *UserHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "Not authenticated!")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("profilePicture")
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Missing profilePicture file")
		return
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		respondError(w, h.logger, err)
		return
	}

	name := uuid.NewString() + "-" + filepath.Base(header.Filename)
	dstPath := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		respondError(w, h.logger, err)
		return
	}

	picture := "/uploads/" + name
	user, err := h.userUsecase.UpdateProfile(r.Context(), claims.UserID, repository.UpdateProfileParams{
		ProfilePicture: &picture,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Profile picture updated", httpx.Envelope{
		"user": user.Public(),
	})
}
