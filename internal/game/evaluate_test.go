package game

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	C = TileCorrect
	M = TileMisplaced
	I = TileIncorrect
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		target, guess string
		want          []TileState
	}{
		{"crane", "crane", []TileState{C, C, C, C, C}},
		{"crane", "CRANE", []TileState{C, C, C, C, C}},
		{"crane", "ocean", []TileState{I, M, M, M, M}},
		{"crane", "crone", []TileState{C, C, I, C, C}},
		// one 'l' in the target: the exact match at index 2 takes it
		{"salon", "lolls", []TileState{I, M, C, I, M}},
		{"allow", "lilac", []TileState{M, I, C, M, I}},
		{"abbey", "bobby", []TileState{M, I, C, I, C}},
		// leftmost surplus copies are credited first
		{"speed", "eerie", []TileState{M, M, I, I, I}},
		{"geese", "eerie", []TileState{M, C, I, I, C}},
	}
	for _, tt := range tests {
		t.Run(tt.target+"/"+tt.guess, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.target, tt.guess))
		})
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	assert.Nil(t, Evaluate("crane", "cran"))
}

func TestEvaluateNeverOvercredits(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	word := func() string {
		var b strings.Builder
		for range Cols {
			b.WriteByte("abcd"[r.IntN(4)])
		}
		return b.String()
	}
	for range 2000 {
		target, guess := word(), word()
		marks := Evaluate(target, guess)

		credited := map[byte]int{}
		for i, m := range marks {
			if m == TileCorrect {
				assert.Equal(t, target[i], guess[i])
			}
			if m == TileCorrect || m == TileMisplaced {
				credited[guess[i]]++
			}
			if guess[i] == target[i] {
				assert.Equal(t, TileCorrect, m, "%s vs %s", guess, target)
			}
		}
		for l, n := range credited {
			assert.LessOrEqual(t, n, strings.Count(target, string(l)), "%s vs %s", guess, target)
		}
	}
}

func TestAllCorrect(t *testing.T) {
	assert.True(t, AllCorrect([]TileState{C, C, C, C, C}))
	assert.False(t, AllCorrect([]TileState{C, C, M, C, C}))
	assert.False(t, AllCorrect(nil))
}
