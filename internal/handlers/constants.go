package handlers

const (
	// SessionCookieName is the cookie carrying the session ID
	SessionCookieName = "session_id"

	maxRequestBodySize = 1 << 16 // 64 KB
)

// Shared error messages
const (
	ErrInvalidRequestBody   = "Invalid request body"
	ErrAuthRequired         = "Authentication required"
	ErrInternalServer       = "Internal server error"
	ErrTooManyRequests      = "Too many requests, please try again later"
	ErrInvalidCSRFToken     = "Invalid CSRF token"
	ErrGameAlreadyPlayed    = "You have already played your game"
	ErrGameNotActive        = "No active game session"
	ErrGameSessionInvalid   = "Invalid game session"
	ErrGameAlreadyComplete  = "Game is already complete"
	ErrQuestionRequired     = "Question must not be empty"
	ErrNoGameToEnd          = "No active game to end"
	ErrInvalidLogin         = "Invalid username or password"
	ErrUsernameUnavailable  = "Username is already taken"
	ErrEmailUnavailable     = "Email is already registered"
	ErrPasswordResetInvalid = "Invalid or expired reset token"
)
