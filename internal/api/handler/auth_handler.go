package handler

import (
	"encoding/json"
	"net/http"

	"tedumasters/internal/api/middleware"
	"tedumasters/internal/app/service"
	"tedumasters/internal/common"
	"tedumasters/internal/common/security"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Get("/test", h.test)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Post("/logout", h.logout)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, token, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	// The session token rides in the header; the body is the user record.
	w.Header().Set("Authorization", "Bearer "+token)
	common.RespondWithJSON(w, http.StatusCreated, user)
}

// login reads credentials from query parameters, matching the original
// client's contract.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	password := r.URL.Query().Get("password")

	user, token, err := h.authService.Authenticate(r.Context(), username, password)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	jti, err := security.GetTokenIDFromClaims(claims)
	if err != nil {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
		return
	}
	expiresAt, err := security.GetExpiryFromClaims(claims)
	if err != nil {
		common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
		return
	}

	if err := h.authService.Logout(r.Context(), jti, expiresAt); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) test(w http.ResponseWriter, r *http.Request) {
	common.RespondWithText(w, http.StatusOK, "Auth endpoint is working!")
}
