package handlers

import (
	"errors"
	"log"
	"net/http"

	"wordquest/internal/security"
	"wordquest/internal/service"
	"wordquest/internal/validation"
)

// AuthHandler serves account registration, login, and password reset
type AuthHandler struct {
	authService  *service.AuthService
	gameService  *service.GameService
	emailService *service.EmailService
	csrf         *security.CSRFGenerator
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(authService *service.AuthService, gameService *service.GameService, emailService *service.EmailService, csrf *security.CSRFGenerator) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		gameService:  gameService,
		emailService: emailService,
		csrf:         csrf,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		var verr validation.ValidationError
		switch {
		case errors.As(err, &verr):
			respondWithError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, service.ErrUsernameTaken):
			respondWithError(w, http.StatusConflict, ErrUsernameUnavailable)
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, ErrEmailUnavailable)
		default:
			log.Printf("Error registering user: %v", err)
			respondWithError(w, http.StatusInternalServerError, ErrInternalServer)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	session, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, ErrInvalidLogin)
			return
		}
		log.Printf("Error logging in user: %v", err)
		respondWithError(w, http.StatusInternalServerError, ErrInternalServer)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	respondWithJSON(w, http.StatusOK, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Logout handles POST /logout. The in-memory game state for the user is
// discarded; a later login resumes from the stored game.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := UserFromContext(r.Context()); ok {
		h.gameService.ClearSession(user.ID)
	}
	if sessionID, ok := SessionIDFromContext(r.Context()); ok {
		if err := h.authService.Logout(sessionID); err != nil {
			log.Printf("Error logging out: %v", err)
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me handles GET /me, returning the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrAuthRequired)
		return
	}
	respondWithJSON(w, http.StatusOK, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// CSRFToken handles GET /csrf_token, issuing a token bound to the session
func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrAuthRequired)
		return
	}
	token, err := h.csrf.GenerateToken(sessionID)
	if err != nil {
		log.Printf("Error generating CSRF token: %v", err)
		respondWithError(w, http.StatusInternalServerError, ErrInternalServer)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /forgot_password. The response is identical
// whether or not the email is registered.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		log.Printf("Error requesting password reset: %v", err)
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "If that email is registered, a reset link has been sent",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword handles POST /reset_password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.Password); err != nil {
		var verr validation.ValidationError
		switch {
		case errors.As(err, &verr):
			respondWithError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, service.ErrResetTokenInvalid):
			respondWithError(w, http.StatusBadRequest, ErrPasswordResetInvalid)
		default:
			log.Printf("Error resetting password: %v", err)
			respondWithError(w, http.StatusInternalServerError, ErrInternalServer)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset"})
}
