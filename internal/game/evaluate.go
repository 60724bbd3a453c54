// internal/game/evaluate.go
//
// Guess scoring. Two passes over a positional pool of the target's letters:
// exact matches first, then misplaced letters against what is left, so a
// letter is never credited more often than it occurs in the target.

package game

import (
	"bytes"
	"strings"
)

// Evaluate scores guess against target, one TileState per position.
//
// Pass 1 marks exact matches Correct and blanks them out of a pool holding the
// target's letters by position. A letter that appears nowhere in target is
// Incorrect right away.
// Pass 2 resolves the rest left to right: the first unconsumed pool slot with
// the same letter makes the tile Misplaced and is consumed, otherwise the tile
// is Incorrect. Surplus copies of a letter therefore end up Incorrect.
//
// Both words are compared case-insensitively. Nil is returned if the lengths
// differ.
func Evaluate(target, guess string) []TileState {
	target = strings.ToLower(target)
	guess = strings.ToLower(guess)
	if len(target) != len(guess) {
		return nil
	}

	n := len(target)
	res := make([]TileState, n)
	pool := []byte(target)
	resolved := make([]bool, n)

	for i := 0; i < n; i++ {
		switch {
		case guess[i] == target[i]:
			res[i] = TileCorrect
			pool[i] = 0
			resolved[i] = true
		case strings.IndexByte(target, guess[i]) < 0:
			res[i] = TileIncorrect
			resolved[i] = true
		}
	}

	for i := 0; i < n; i++ {
		if resolved[i] {
			continue
		}
		if j := bytes.IndexByte(pool, guess[i]); j >= 0 {
			res[i] = TileMisplaced
			pool[j] = 0
		} else {
			res[i] = TileIncorrect
		}
	}
	return res
}

// AllCorrect reports whether every state is TileCorrect.
func AllCorrect(states []TileState) bool {
	if len(states) == 0 {
		return false
	}
	for _, s := range states {
		if s != TileCorrect {
			return false
		}
	}
	return true
}
