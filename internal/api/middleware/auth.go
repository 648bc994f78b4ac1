package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/localjobs/localjobs-api/internal/domain"
	"github.com/localjobs/localjobs-api/internal/service"
)

type contextKey string

const (
	UserIDKey   contextKey = "userID"
	UserRoleKey contextKey = "userRole"
)

// Auth verifies the bearer token and re-resolves the account from storage.
// The role attached to the context is the account's current role, not the
// claim embedded at issuance, so role changes and suspensions take effect on
// the next request even while the token stays cryptographically valid.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization header")
				return
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			userIDStr, ok := (*claims)["sub"].(string)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			user, err := authService.GetUserByID(r.Context(), userID)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token subject no longer resolves: %v", err)
				writeJSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if !user.IsActive {
				writeJSONError(w, http.StatusForbidden, "account is suspended")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserRoleKey, user.UserType)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route by allowed-role set. When business access is
// allowed and the caller is a business, the verification flag is re-read
// from storage; admins skip that check but must themselves be in the set.
func RequireRole(authService *service.AuthService, allowed ...domain.UserType) func(http.Handler) http.Handler {
	allowedSet := make(map[domain.UserType]bool, len(allowed))
	businessAllowed := false
	for _, role := range allowed {
		allowedSet[role] = true
		if role == domain.UserTypeBusiness {
			businessAllowed = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			role, ok := GetUserRole(r.Context())
			if !ok || !allowedSet[role] {
				writeJSONError(w, http.StatusForbidden, "access denied")
				return
			}

			if businessAllowed && role == domain.UserTypeBusiness {
				user, err := authService.GetUserByID(r.Context(), userID)
				if err != nil {
					writeJSONError(w, http.StatusUnauthorized, "invalid token")
					return
				}
				if !user.IsVerified {
					writeJSONError(w, http.StatusForbidden, "business account pending verification")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func GetUserRole(ctx context.Context) (domain.UserType, bool) {
	role, ok := ctx.Value(UserRoleKey).(domain.UserType)
	return role, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
