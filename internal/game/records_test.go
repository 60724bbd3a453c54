package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordguess/internal/keyboard"
)

func TestStatsRecord(t *testing.T) {
	var s Stats
	s.RecordWin(3)
	s.RecordWin(1)
	assert.Equal(t, 2, s.CurrentStreak)
	assert.Equal(t, 2, s.MaxStreak)

	s.RecordLoss()
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 2, s.MaxStreak)

	s.RecordWin(6)
	s.RecordWin(9) // out of range: counted but not bucketed
	assert.Equal(t, 5, s.GamesPlayed)
	assert.Equal(t, 4, s.GamesWon)
	assert.Equal(t, [Rows + 1]int{1, 0, 1, 0, 0, 1, 1}, s.GuessDistribution)
	assert.InDelta(t, 80.0, s.WinPercentage(), 0.001)
	assert.Zero(t, Stats{}.WinPercentage())
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
		keys int
	}{
		{"easy", Easy, 4},
		{"Medium", Medium, 2},
		{" HARD ", Hard, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDifficulty(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.Equal(t, tt.keys, d.IncorrectKeyCount())
		})
	}
	_, err := ParseDifficulty("nightmare")
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
	assert.False(t, Difficulty(-1).Valid())
}

func TestDifficultyJSON(t *testing.T) {
	b, err := json.Marshal(struct{ D Difficulty }{Hard})
	require.NoError(t, err)
	assert.JSONEq(t, `{"D":"Hard"}`, string(b))

	var v struct{ D Difficulty }
	require.NoError(t, json.Unmarshal([]byte(`{"D":"easy"}`), &v))
	assert.Equal(t, Easy, v.D)
	assert.Error(t, json.Unmarshal([]byte(`{"D":"x"}`), &v))
}

func TestTileStateCodes(t *testing.T) {
	for _, s := range []TileState{TileEmpty, TileOccupied, TileCorrect, TileMisplaced, TileIncorrect} {
		assert.Equal(t, s, TileStateFromCode(s.Code()), s.String())
	}
	assert.Equal(t, TileEmpty, TileStateFromCode('?'))
	assert.Equal(t, keyboard.Misplaced, TileMisplaced.KeyState())
	assert.Equal(t, keyboard.Default, TileOccupied.KeyState())
}

func TestRowWord(t *testing.T) {
	var r Row
	r[0] = Cell{Letter: 'A', State: TileOccupied}
	r[1] = Cell{Letter: 'B', State: TileOccupied}
	assert.Equal(t, "AB", r.Word())
	assert.Equal(t, 2, r.Filled())
}

func TestAdvice(t *testing.T) {
	text, d, ok := Advice(ErrIncompleteRow)
	assert.True(t, ok)
	assert.Equal(t, "You need to enter a full five-letter word", text)
	assert.True(t, d > 0)

	_, _, ok = Advice(ErrCorruptSave)
	assert.False(t, ok)
}
