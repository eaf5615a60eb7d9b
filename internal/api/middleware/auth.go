package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/greenrise/greenrise-api/internal/api/shared"
	"github.com/greenrise/greenrise-api/internal/platform/logger"
	"github.com/greenrise/greenrise-api/internal/redact"
	"github.com/greenrise/greenrise-api/internal/service/auth"
)

// Client-facing messages for rejected requests.
const (
	MsgNoToken      = "No token provided"
	MsgInvalidToken = "Invalid token"
)

// AuthMiddleware guards routes with bearer-token authentication.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate requires "Authorization: Bearer <token>". Requests without a
// valid, unexpired token get 401 and never reach next. On success the
// user's id and email are placed in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		header := r.Header.Get("Authorization")
		if strings.TrimSpace(header) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgNoToken)
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			log.Debug("malformed authorization header")
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgInvalidToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) || errors.Is(err, auth.ErrInvalidToken) {
				log.Debug("rejected token", slog.String("reason", err.Error()))
			} else {
				log.Error("failed to validate token", slog.String("error", redact.Error(err)))
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgInvalidToken)
			return
		}

		ctx := shared.WithUser(r.Context(), claims.UserID, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from "<scheme> <token>". The scheme must be
// Bearer, in any letter case.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
