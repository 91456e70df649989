package models

import "time"

// GameRecord is the durable row for one play attempt. A user has at most one
// record with Completed=false (the active game), and once any completed
// record exists no further records may be created for that user.
type GameRecord struct {
	ID           int64
	UserID       int64
	WordsGuessed int
	TotalHints   int
	Score        int
	TimeTaken    float64
	Completed    bool
	CreatedAt    time.Time
}

// GameWord is one fixed slot in a game's word sequence, created in bulk when
// the game starts and immutable afterward.
type GameWord struct {
	ID       int64
	GameID   int64
	Word     string
	Position int
}

// GameSession is the ephemeral per-player mirror of an active game. It is
// rebuilt from GameRecord/GameWord rows on resume and is never consulted for
// replay decisions; those always go to the durable record.
type GameSession struct {
	GameID       int64
	UserID       int64
	Words        []string
	CurrentIndex int
	Hints        []string
	TotalHints   int
	StartedAt    time.Time
}

// CurrentWord returns the word at the session's progress pointer, or "" when
// the sequence is exhausted.
func (s *GameSession) CurrentWord() string {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Words) {
		return ""
	}
	return s.Words[s.CurrentIndex]
}

// Finished reports whether every word in the sequence has been guessed.
func (s *GameSession) Finished() bool {
	return s.CurrentIndex >= len(s.Words)
}
