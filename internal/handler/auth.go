package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/voblako/voblako/internal/ctxkeys"
	"github.com/voblako/voblako/internal/model"
	"github.com/voblako/voblako/internal/service"
	"github.com/voblako/voblako/internal/validation"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"password_repeat"`
}

// Check reports whether the caller holds a valid session.
func (h *authHandler) Check(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	writeJSON(w, http.StatusOK, model.AuthResponse{
		IsAuth: user != nil,
		User:   user,
	})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	// An authenticated caller cannot log in again
	if ctxkeys.User(r.Context()) != nil {
		statusError(w, http.StatusBadRequest, msgAlreadyAuthorized)
		return
	}

	var req loginRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		statusError(w, http.StatusBadRequest, msgWrongJSON)
		return
	}

	if !validation.IsValidEmail(req.Email) {
		statusError(w, http.StatusBadRequest, msgWrongJSON)
		return
	}

	// Length bounds are checked before credentials on purpose: the error
	// message must not leak whether the account exists
	if !validation.IsValidPasswordLength(req.Password) {
		statusError(w, http.StatusBadRequest, msgPasswordLength)
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			statusError(w, http.StatusBadRequest, msgWrongCredentials)
			return
		}
		slog.Error("login failed", "error", err)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	h.startSession(w, user)
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		statusError(w, http.StatusBadRequest, msgWrongJSON)
		return
	}

	if !validation.IsValidEmail(req.Email) {
		statusError(w, http.StatusBadRequest, msgWrongJSON)
		return
	}

	if !validation.IsValidPasswordLength(req.Password) {
		statusError(w, http.StatusBadRequest, msgPasswordLength)
		return
	}

	if req.Password != req.PasswordRepeat {
		statusError(w, http.StatusBadRequest, msgPasswordsMismatch)
		return
	}

	user, err := h.authService.Signup(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			statusError(w, http.StatusBadRequest, msgEmailTaken)
			return
		}
		slog.Error("signup failed", "error", err)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	h.startSession(w, user)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if ctxkeys.User(r.Context()) == nil {
		statusError(w, http.StatusUnauthorized, msgNotAuthorized)
		return
	}

	// No server-side session state to revoke, clearing the cookie is the
	// whole operation
	h.authService.ClearSessionCookie(w)
	emptySuccess(w)
}

func (h *authHandler) startSession(w http.ResponseWriter, user *model.User) {
	public := user.Public()

	token, err := h.authService.GenerateSession(public)
	if err != nil {
		slog.Error("failed to generate session token", "error", err, "user_id", user.ID)
		statusError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	h.authService.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, model.AuthResponse{IsAuth: true, User: public})
}
