// internal/game/types.go
//
// Core type definitions for the game engine.
// Defines:
//   - Difficulty: Easy/Medium/Hard tier, keys saves and statistics.
//   - TileState:  per-cell classification (empty/occupied/correct/misplaced/incorrect).
//   - Cell, Row:  the 6x5 board.
//   - Status:     playing → won/lost.

package game

import (
	"fmt"
	"strings"

	"github.com/robalobadob/wordguess/internal/keyboard"
)

const (
	// Rows is the number of guesses a player gets.
	Rows = 6
	// Cols is the number of letters per guess.
	Cols = 5
)

// Difficulty selects how many keys are pre-marked incorrect and which
// save/statistics record is used.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists every tier in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// String is the tier name used in persisted keys and JSON.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// Valid reports whether d is one of the defined tiers.
func (d Difficulty) Valid() bool { return d >= Easy && d <= Hard }

// IncorrectKeyCount is the number of absent letters revealed before play.
func (d Difficulty) IncorrectKeyCount() int {
	switch d {
	case Easy:
		return 4
	case Medium:
		return 2
	default:
		return 0
	}
}

// ParseDifficulty accepts a tier name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
}

// MarshalText encodes d by name; out-of-range values are an error.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, ErrInvalidDifficulty
	}
	return []byte(d.String()), nil
}

// UnmarshalText accepts any case of a tier name.
func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// TileState classifies a single board cell. The zero value is TileEmpty.
type TileState int

const (
	TileEmpty TileState = iota
	TileOccupied
	TileCorrect
	TileMisplaced
	TileIncorrect
)

// String is the lowercase state name used in JSON.
func (s TileState) String() string {
	switch s {
	case TileOccupied:
		return "occupied"
	case TileCorrect:
		return "correct"
	case TileMisplaced:
		return "misplaced"
	case TileIncorrect:
		return "incorrect"
	default:
		return "empty"
	}
}

// MarshalText encodes s by name.
func (s TileState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Code is the one-character form used in saved games.
func (s TileState) Code() byte {
	switch s {
	case TileCorrect:
		return 'C'
	case TileIncorrect:
		return 'I'
	case TileMisplaced:
		return 'M'
	case TileOccupied:
		return 'O'
	default:
		return 'E'
	}
}

// TileStateFromCode is the inverse of Code. Unknown codes map to TileEmpty.
func TileStateFromCode(c byte) TileState {
	switch c {
	case 'C':
		return TileCorrect
	case 'I':
		return TileIncorrect
	case 'M':
		return TileMisplaced
	case 'O':
		return TileOccupied
	default:
		return TileEmpty
	}
}

// KeyState is the keyboard feedback a scored tile contributes.
func (s TileState) KeyState() keyboard.State {
	switch s {
	case TileCorrect:
		return keyboard.Correct
	case TileMisplaced:
		return keyboard.Misplaced
	case TileIncorrect:
		return keyboard.Incorrect
	default:
		return keyboard.Default
	}
}

// Cell is one letter slot. Letter is an uppercase A–Z rune or 0 when empty.
type Cell struct {
	Letter rune
	State  TileState
}

// Row is one guess attempt.
type Row [Cols]Cell

// Filled counts the letters in the row.
func (r Row) Filled() int {
	n := 0
	for _, c := range r {
		if c.Letter != 0 {
			n++
		}
	}
	return n
}

// Word returns the row's letters, stopping at the first empty cell.
func (r Row) Word() string {
	var b strings.Builder
	for _, c := range r {
		if c.Letter == 0 {
			break
		}
		b.WriteRune(c.Letter)
	}
	return b.String()
}

// Status is the coarse session state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Ended reports whether the status is terminal.
func (s Status) Ended() bool { return s == StatusWon || s == StatusLost }
