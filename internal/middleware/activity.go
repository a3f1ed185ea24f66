package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/repository"
	"github.com/glowcart/glowcart-api/shared/auth"
)

// statusRecorder captures the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// ActivityLog records every handled request in the activity log collection.
// Logging failures never fail the request.
func ActivityLog(jwtAuth auth.JWTAuthenticator, repo repository.ActivityLogRepository, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			// This middleware wraps the auth middleware, so the user has to
			// be resolved from the bearer token here.
			username := "anonymous"
			if claims, ok := validateBearer(jwtAuth, r); ok {
				username = claims.UserID
			}

			entry := &model.ActivityLog{
				Username:  username,
				URL:       r.URL.Path,
				Method:    r.Method,
				Status:    recorder.status,
				Device:    r.UserAgent(),
				IPAddress: r.RemoteAddr,
				Time:      time.Now(),
			}

			if err := repo.Insert(r.Context(), entry); err != nil {
				logger.Error().Err(err).Msg("failed to record activity log")
			}
		})
	}
}

// RequestLogger writes one structured line per handled request.
func RequestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recorder.status).
				Dur("duration", time.Since(start)).
				Msg("request handled")
		})
	}
}
