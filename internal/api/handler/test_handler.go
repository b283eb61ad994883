package handler

import (
	"net/http"

	"tedumasters/internal/api/middleware"
	"tedumasters/internal/common"

	"github.com/go-chi/chi/v5"
)

// TestHandler exposes the connectivity-check endpoints the original client
// uses to probe public and authenticated access.
type TestHandler struct{}

func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

func (h *TestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/public", h.public)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Get("/protected", h.protected)
		protected.Get("/user-info", h.userInfo)
	})
}

func (h *TestHandler) public(w http.ResponseWriter, r *http.Request) {
	common.RespondWithText(w, http.StatusOK, "This is a public endpoint - no authentication required!")
}

func (h *TestHandler) protected(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	common.RespondWithText(w, http.StatusOK, "This is a protected endpoint! Hello, "+username)
}

func (h *TestHandler) userInfo(w http.ResponseWriter, r *http.Request) {
	username, okName := middleware.GetUsernameFromContext(r.Context())
	role, okRole := middleware.GetUserRoleFromContext(r.Context())
	if !okName || !okRole {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"username":      username,
		"role":          role,
		"authenticated": true,
	})
}
