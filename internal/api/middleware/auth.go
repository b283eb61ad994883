package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"tedumasters/internal/common"
	"tedumasters/internal/common/security"
	"tedumasters/internal/platform/tokenstore"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey   contextKey = "userID"
	UsernameCtxKey contextKey = "username"
	UserRoleCtxKey contextKey = "userRole"
)

// Authenticator requires a valid, unrevoked bearer token and stashes the
// authenticated principal in the request context. jwtauth.Verifier must run
// earlier in the chain.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}
		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		username, err := security.GetUsernameFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		userRole, err := security.GetUserRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		if jti, err := security.GetTokenIDFromClaims(claims); err == nil {
			revoked, err := tokenstore.IsRevoked(r.Context(), jti)
			if err != nil {
				log.Printf("ERROR: revocation check failed for token %s: %v", jti, err)
				common.RespondWithError(w, http.StatusServiceUnavailable, common.ErrStoreUnavailable.Error())
				return
			}
			if revoked {
				common.RespondWithError(w, http.StatusUnauthorized, "Token has been revoked")
				return
			}
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, UsernameCtxKey, username)
		ctx = context.WithValue(ctx, UserRoleCtxKey, userRole)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(UserRoleCtxKey).(string)
			if !ok {
				common.RespondWithError(w, http.StatusForbidden, common.ErrForbidden.Error())
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			common.RespondWithError(w, http.StatusForbidden, common.ErrForbidden.Error())
		})
	}
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}
