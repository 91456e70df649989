package handlers

import (
	"errors"
	"log"
	"net/http"

	"wordquest/internal/service"
)

// GameHandler serves the game play endpoints
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates the game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type startGameResponse struct {
	Message      string `json:"message"`
	CurrentIndex int    `json:"currentIndex"`
	TotalWords   int    `json:"totalWords"`
}

// StartGame handles POST /start_game. A fresh game deals a new word list;
// an unfinished game resumes at its stored position. Accounts that already
// finished a game are rejected.
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrAuthRequired)
		return
	}

	result, err := h.gameService.StartGame(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyPlayed) {
			respondWithError(w, http.StatusForbidden, ErrGameAlreadyPlayed)
			return
		}
		log.Printf("Error starting game for user %d: %v", user.ID, err)
		respondWithError(w, http.StatusInternalServerError, ErrInternalServer)
		return
	}

	message := "Game started"
	if result.Resumed {
		message = "Game resumed"
	}
	respondWithJSON(w, http.StatusOK, startGameResponse{
		Message:      message,
		CurrentIndex: result.CurrentIndex,
		TotalWords:   result.TotalWords,
	})
}

type askHintRequest struct {
	Question string `json:"question"`
}

type askHintResponse struct {
	Hint string `json:"hint"`
}

// AskHint handles POST /ask_hint, relaying the player's question to the
// hint model for the current word.
func (h *GameHandler) AskHint(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrAuthRequired)
		return
	}

	var req askHintRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	hintText, err := h.gameService.AskHint(r.Context(), user.ID, req.Question)
	if err != nil {
		h.respondGameError(w, user.ID, "asking hint", err)
		return
	}

	respondWithJSON(w, http.StatusOK, askHintResponse{Hint: hintText})
}

type submitAnswerRequest struct {
	Answer string `json:"answer"`
}

type submitAnswerResponse struct {
	Correct      bool     `json:"correct"`
	Message      string   `json:"message"`
	CurrentIndex int      `json:"currentIndex,omitempty"`
	TotalWords   int      `json:"totalWords,omitempty"`
	Score        *int     `json:"score,omitempty"`
	Time         *float64 `json:"time,omitempty"`
}

// SubmitAnswer handles POST /submit_answer
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrAuthRequired)
		return
	}

	var req submitAnswerRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	result, err := h.gameService.SubmitAnswer(user.ID, req.Answer)
	if err != nil {
		h.respondGameError(w, user.ID, "submitting answer", err)
		return
	}

	resp := submitAnswerResponse{Correct: result.Correct}
	switch {
	case result.Completed:
		resp.Message = "Game Over! You guessed all words."
		resp.Score = &result.Score
		resp.Time = &result.TimeTaken
	case result.Correct:
		resp.Message = "Correct! Next word."
		resp.CurrentIndex = result.CurrentIndex
		resp.TotalWords = result.TotalWords
	default:
		resp.Message = "Incorrect! Try again."
		resp.CurrentIndex = result.CurrentIndex
		resp.TotalWords = result.TotalWords
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// EndGame handles POST /end_game, sealing the active game early
func (h *GameHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrAuthRequired)
		return
	}

	if err := h.gameService.EndGame(user.ID); err != nil {
		if errors.Is(err, service.ErrNoActiveGame) {
			respondWithError(w, http.StatusBadRequest, ErrNoGameToEnd)
			return
		}
		log.Printf("Error ending game for user %d: %v", user.ID, err)
		respondWithError(w, http.StatusInternalServerError, ErrInternalServer)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Game ended"})
}

func (h *GameHandler) respondGameError(w http.ResponseWriter, userID int64, action string, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		respondWithError(w, http.StatusBadRequest, ErrGameNotActive)
	case errors.Is(err, service.ErrEmptyQuestion):
		respondWithError(w, http.StatusBadRequest, ErrQuestionRequired)
	case errors.Is(err, service.ErrInvalidSession):
		respondWithError(w, http.StatusForbidden, ErrGameSessionInvalid)
	case errors.Is(err, service.ErrGameComplete):
		respondWithError(w, http.StatusForbidden, ErrGameAlreadyComplete)
	default:
		log.Printf("Error %s for user %d: %v", action, userID, err)
		respondWithError(w, http.StatusInternalServerError, ErrInternalServer)
	}
}
