package handlers

import (
	"net/http"
	"time"

	"github.com/eventtracker/server/internal/api/httpx"
	"github.com/eventtracker/server/internal/auth"
	"github.com/eventtracker/server/internal/metrics"
	"github.com/eventtracker/server/internal/middleware"
	"github.com/eventtracker/server/internal/models"
	"github.com/eventtracker/server/internal/services"
)

type AuthHandler struct {
	users *services.UserService
	tm    *auth.TokenManager
}

func NewAuthHandler(users *services.UserService, tm *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tm: tm}
}

type profileResp struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func toProfile(u models.User) profileResp {
	return profileResp{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		CreatedAt: u.CreatedAt,
	}
}

type tokenResp struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	User         profileResp `json:"user"`
}

func (h *AuthHandler) tokenPair(w http.ResponseWriter, status int, u models.User) {
	access, refresh, exp, err := h.tm.GeneratePair(u.ID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "token generation failed", nil)
		return
	}
	httpx.WriteJSON(w, status, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Until(exp).Seconds()),
		User:         toProfile(u),
	})
}

type registerReq struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// Register creates an account and logs the user straight in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	u, err := h.users.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	h.tokenPair(w, http.StatusCreated, u)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthFailures.Inc()
		httpx.WriteDomainError(w, err)
		return
	}
	h.tokenPair(w, http.StatusOK, u)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := httpx.DecodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "refresh_token required", nil)
		return
	}
	claims, err := h.tm.ParseRefresh(req.RefreshToken)
	if err != nil {
		metrics.AuthFailures.Inc()
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
		return
	}
	u, err := h.users.Profile(r.Context(), claims.UserID)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
		return
	}
	h.tokenPair(w, http.StatusOK, u)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing actor", nil)
		return
	}
	u, err := h.users.Profile(r.Context(), actorID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProfile(u))
}
