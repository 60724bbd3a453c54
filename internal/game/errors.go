// internal/game/errors.go
//
// Gameplay errors and the player-facing text for them.
// None of these unwind game state; the caller shows the advice and carries on.

package game

import (
	"errors"
	"time"
)

var (
	ErrIncompleteRow     = errors.New("game: row is not complete")
	ErrNotAWord          = errors.New("game: not in word list")
	ErrNoHintsAvailable  = errors.New("game: no hints available")
	ErrGameOver          = errors.New("game: game finished")
	ErrGameInProgress    = errors.New("game: game still in progress")
	ErrNotStarted        = errors.New("game: no game started")
	ErrCorruptSave       = errors.New("game: saved game is corrupt")
	ErrInvalidDifficulty = errors.New("game: invalid difficulty")
)

// Advice turns a recoverable gameplay error into the text shown to the
// player and how long to show it. ok is false for errors that are not
// player-facing.
func Advice(err error) (text string, d time.Duration, ok bool) {
	switch {
	case errors.Is(err, ErrIncompleteRow):
		return "You need to enter a full five-letter word", 5 * time.Second, true
	case errors.Is(err, ErrNotAWord):
		return "Not a word", 2 * time.Second, true
	case errors.Is(err, ErrNoHintsAvailable):
		return "No hints available - all letters already discovered", 5 * time.Second, true
	case errors.Is(err, ErrGameOver):
		return "This game is over - start a new one", 3 * time.Second, true
	case errors.Is(err, ErrGameInProgress):
		return "Finish the game to see the word", 3 * time.Second, true
	case errors.Is(err, ErrNotStarted):
		return "Start a game first", 3 * time.Second, true
	}
	return "", 0, false
}
