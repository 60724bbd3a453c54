// internal/game/hint.go
//
// Keyboard assists: on-demand hints and the incorrect keys pre-marked at the
// start of Easy and Medium games. Both only touch the keyboard, never the board.

package game

import (
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/wordguess/internal/keyboard"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// UseHint marks one undiscovered target letter as Misplaced on the keyboard.
// It never reveals a position. ErrNoHintsAvailable is returned once every
// target letter is already Correct or Misplaced.
func (s *Session) UseHint() (rune, error) {
	if err := s.playing(); err != nil {
		return 0, err
	}
	candidates := lo.Uniq(lo.Filter([]rune(strings.ToUpper(s.target)), func(l rune, _ int) bool {
		return !s.kb.Query(l, keyboard.Correct) && !s.kb.Query(l, keyboard.Misplaced)
	}))
	if len(candidates) == 0 {
		return 0, ErrNoHintsAvailable
	}
	l := candidates[s.rng.IntN(len(candidates))]
	s.kb.Update(l, keyboard.Misplaced)
	return l, nil
}

// seedIncorrectKeys pre-marks IncorrectKeyCount letters that are absent from
// the target. Nothing is marked if fewer absent letters exist than needed.
func (s *Session) seedIncorrectKeys() {
	k := s.difficulty.IncorrectKeyCount()
	if k == 0 {
		return
	}
	upper := strings.ToUpper(s.target)
	absent := lo.Filter([]rune(alphabet), func(l rune, _ int) bool {
		return !strings.ContainsRune(upper, l)
	})
	if len(absent) < k {
		return
	}
	s.rng.Shuffle(len(absent), func(i, j int) { absent[i], absent[j] = absent[j], absent[i] })
	for _, l := range absent[:k] {
		s.kb.Update(l, keyboard.Incorrect)
	}
}
