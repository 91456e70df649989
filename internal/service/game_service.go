package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wordquest/internal/hint"
	"wordquest/internal/mirror"
	"wordquest/internal/models"
	"wordquest/internal/repository"
	"wordquest/internal/words"
)

var (
	ErrAlreadyPlayed   = errors.New("account has already completed a game")
	ErrNoActiveSession = errors.New("no active game session")
	ErrInvalidSession  = errors.New("game session is invalid")
	ErrGameComplete    = errors.New("game is already complete")
	ErrEmptyQuestion   = errors.New("question must not be empty")
	ErrNoActiveGame    = errors.New("no active game to end")
)

// GameService is the game session engine. It owns the start/resume, hint,
// answer, and end transitions, keeping the per-player session mirror in sync
// with the durable game record. Replay decisions always go to the durable
// store; the mirror is only a fast path.
type GameService struct {
	gameRepo      *repository.GameRepository
	mirrors       *mirror.Store
	hints         hint.Generator
	wordsPerGame  int
	pointsPerWord int
	hintTimeout   time.Duration
}

// NewGameService creates a new game service
func NewGameService(gameRepo *repository.GameRepository, mirrors *mirror.Store, hints hint.Generator, wordsPerGame, pointsPerWord int, hintTimeout time.Duration) *GameService {
	return &GameService{
		gameRepo:      gameRepo,
		mirrors:       mirrors,
		hints:         hints,
		wordsPerGame:  wordsPerGame,
		pointsPerWord: pointsPerWord,
		hintTimeout:   hintTimeout,
	}
}

// StartResult reports where a started or resumed game stands
type StartResult struct {
	Resumed      bool
	CurrentIndex int // 1-based position of the word being guessed
	TotalWords   int
}

// AnswerResult reports the outcome of an answer submission
type AnswerResult struct {
	Correct      bool
	Completed    bool
	CurrentIndex int // 1-based, only meaningful while the game is running
	TotalWords   int
	Score        int
	TimeTaken    float64 // seconds, set on completion
}

// StartGame starts a new game for the user or resumes the active one.
// An account with any completed game can never start again.
func (s *GameService) StartGame(userID int64) (*StartResult, error) {
	played, err := s.gameRepo.HasCompletedGame(userID)
	if err != nil {
		return nil, err
	}
	if played {
		return nil, ErrAlreadyPlayed
	}

	active, err := s.gameRepo.GetActiveGame(userID)
	if err != nil {
		return nil, err
	}

	if active != nil {
		return s.resume(userID, active)
	}

	sample, err := words.Sample(s.wordsPerGame)
	if err != nil {
		return nil, fmt.Errorf("failed to sample words: %w", err)
	}

	game, err := s.gameRepo.CreateGame(userID, sample)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.mirrors.Put(userID, &models.GameSession{
		GameID:    game.ID,
		UserID:    userID,
		Words:     sample,
		StartedAt: time.Now(),
	})

	return &StartResult{CurrentIndex: 1, TotalWords: len(sample)}, nil
}

// resume rebuilds the session mirror from the durable record and word rows
func (s *GameService) resume(userID int64, game *models.GameRecord) (*StartResult, error) {
	gameWords, err := s.gameRepo.GetGameWords(game.ID)
	if err != nil {
		return nil, err
	}
	if len(gameWords) == 0 {
		return nil, fmt.Errorf("game %d has no words", game.ID)
	}

	wordList := make([]string, len(gameWords))
	for i, gw := range gameWords {
		wordList[i] = gw.Word
	}

	s.mirrors.Put(userID, &models.GameSession{
		GameID:       game.ID,
		UserID:       userID,
		Words:        wordList,
		CurrentIndex: game.WordsGuessed,
		TotalHints:   game.TotalHints,
		StartedAt:    time.Now(),
	})

	return &StartResult{
		Resumed:      true,
		CurrentIndex: game.WordsGuessed + 1,
		TotalWords:   len(wordList),
	}, nil
}

// AskHint requests a hint for the current word. Gateway failures surface as
// a degraded hint string, never as an error; the hint counter still advances.
func (s *GameService) AskHint(ctx context.Context, userID int64, question string) (string, error) {
	session, _, err := s.validateSession(userID)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	// The gateway call can be slow; no store transaction is held across it.
	hintCtx, cancel := context.WithTimeout(ctx, s.hintTimeout)
	defer cancel()
	hintText := s.hints.GenerateHint(hintCtx, session.CurrentWord(), question)

	if err := s.gameRepo.IncrementHints(session.GameID); err != nil {
		return "", err
	}

	session.Hints = append(session.Hints, hintText)
	session.TotalHints++

	return hintText, nil
}

// SubmitAnswer checks an answer against the current word. A correct answer
// advances the durable record with an expected-index guard and mirrors the
// change; the final word seals the record and fixes the elapsed time.
func (s *GameService) SubmitAnswer(userID int64, answer string) (*AnswerResult, error) {
	session, _, err := s.validateSession(userID)
	if err != nil {
		return nil, err
	}

	total := len(session.Words)

	if normalize(answer) != normalize(session.CurrentWord()) {
		return &AnswerResult{
			Correct:      false,
			CurrentIndex: session.CurrentIndex + 1,
			TotalWords:   total,
		}, nil
	}

	advanced, err := s.gameRepo.AdvanceWord(session.GameID, session.CurrentIndex, s.pointsPerWord)
	if err != nil {
		return nil, err
	}
	if !advanced {
		// Another request moved the pointer first. Reconcile the mirror with
		// one fresh read and report no advance from this call.
		return s.reconcile(userID, session)
	}

	session.CurrentIndex++
	session.Hints = nil
	score := session.CurrentIndex * s.pointsPerWord

	if session.Finished() {
		timeTaken := time.Since(session.StartedAt).Seconds()
		if _, err := s.gameRepo.CompleteGame(session.GameID, timeTaken); err != nil {
			return nil, err
		}
		return &AnswerResult{
			Correct:   true,
			Completed: true,
			Score:     score,
			TimeTaken: timeTaken,
		}, nil
	}

	return &AnswerResult{
		Correct:      true,
		CurrentIndex: session.CurrentIndex + 1,
		TotalWords:   total,
		Score:        score,
	}, nil
}

// reconcile refreshes a mirror that fell behind the durable record
func (s *GameService) reconcile(userID int64, session *models.GameSession) (*AnswerResult, error) {
	game, err := s.gameRepo.GetGameByID(session.GameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		s.mirrors.Delete(userID)
		return nil, ErrInvalidSession
	}
	if game.Completed {
		return nil, ErrGameComplete
	}

	session.CurrentIndex = game.WordsGuessed
	session.Hints = nil

	return &AnswerResult{
		Correct:      false,
		CurrentIndex: session.CurrentIndex + 1,
		TotalWords:   len(session.Words),
	}, nil
}

// EndGame seals the user's active game early, recording elapsed time and
// discarding the session mirror. Progress made so far keeps its score.
func (s *GameService) EndGame(userID int64) error {
	active, err := s.gameRepo.GetActiveGame(userID)
	if err != nil {
		return err
	}
	if active == nil {
		return ErrNoActiveGame
	}

	// Safe default when the mirror (and its start time) is gone.
	var timeTaken float64
	if session := s.mirrors.Get(userID); session != nil && session.GameID == active.ID {
		timeTaken = time.Since(session.StartedAt).Seconds()
	}

	if _, err := s.gameRepo.CompleteGame(active.ID, timeTaken); err != nil {
		return err
	}

	s.mirrors.Delete(userID)
	return nil
}

// ClearSession discards the user's session mirror, e.g. on logout. The
// durable record is untouched; the game resumes on the next start.
func (s *GameService) ClearSession(userID int64) {
	s.mirrors.Delete(userID)
}

// validateSession checks the mirror against the durable record: the record
// must exist, belong to the caller, be incomplete, and the progress pointer
// must be in bounds.
func (s *GameService) validateSession(userID int64) (*models.GameSession, *models.GameRecord, error) {
	session := s.mirrors.Get(userID)
	if session == nil {
		return nil, nil, ErrNoActiveSession
	}

	game, err := s.gameRepo.GetGameByID(session.GameID)
	if err != nil {
		return nil, nil, err
	}
	if game == nil || game.UserID != userID {
		s.mirrors.Delete(userID)
		return nil, nil, ErrInvalidSession
	}
	if game.Completed {
		return nil, nil, ErrGameComplete
	}
	if session.Finished() {
		return nil, nil, ErrGameComplete
	}

	return session, game, nil
}

// normalize trims whitespace and case-folds for answer comparison
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
