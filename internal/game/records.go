// internal/game/records.go
//
// Persisted records:
//   - Save:  snapshot of an unfinished game, one per difficulty.
//   - Stats: long-run results, one per difficulty.

package game

import "fmt"

// LossBucket is the GuessDistribution index counting lost games.
const LossBucket = Rows

// Save is the persisted snapshot of an unfinished game for one difficulty.
type Save struct {
	Difficulty        Difficulty
	HasUnfinishedGame bool
	Word              string
	RowIndex          int
	ColumnIndex       int
	GuessCount        int
	Board             [Rows]string // one char per cell, ' ' for empty
	TileStates        [Rows]string // one state code per cell, see TileState.Code
	KeyboardState     string       // keyboard.Aggregator.Serialize output
}

// Validate checks that the save describes a resumable game.
func (s Save) Validate() error {
	if !s.Difficulty.Valid() {
		return fmt.Errorf("%w: difficulty %d", ErrCorruptSave, int(s.Difficulty))
	}
	if len(s.Word) != Cols || !isLowerAlpha(s.Word) {
		return fmt.Errorf("%w: word %q", ErrCorruptSave, s.Word)
	}
	if s.RowIndex < 0 || s.RowIndex >= Rows {
		return fmt.Errorf("%w: row %d", ErrCorruptSave, s.RowIndex)
	}
	if s.ColumnIndex < 0 || s.ColumnIndex > Cols {
		return fmt.Errorf("%w: column %d", ErrCorruptSave, s.ColumnIndex)
	}
	if s.GuessCount < 0 || s.GuessCount > Rows {
		return fmt.Errorf("%w: guess count %d", ErrCorruptSave, s.GuessCount)
	}
	for r, line := range s.Board {
		if len(line) > Cols || len(s.TileStates[r]) > Cols {
			return fmt.Errorf("%w: row %d too long", ErrCorruptSave, r)
		}
	}
	return nil
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Stats is the long-run record for one difficulty.
type Stats struct {
	GamesPlayed       int
	GamesWon          int
	CurrentStreak     int
	MaxStreak         int
	GuessDistribution [Rows + 1]int // [0..5] wins in 1..6 guesses, [6] losses
}

// RecordWin counts a win in guesses attempts.
func (s *Stats) RecordWin(guesses int) {
	s.GamesPlayed++
	s.GamesWon++
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	if guesses >= 1 && guesses <= Rows {
		s.GuessDistribution[guesses-1]++
	}
}

// RecordLoss counts a loss and breaks the streak.
func (s *Stats) RecordLoss() {
	s.GamesPlayed++
	s.CurrentStreak = 0
	s.GuessDistribution[LossBucket]++
}

// WinPercentage is GamesWon/GamesPlayed in percent, 0 with no games.
func (s Stats) WinPercentage() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.GamesWon) / float64(s.GamesPlayed) * 100
}
