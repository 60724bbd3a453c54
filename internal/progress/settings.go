// internal/progress/settings.go
//
// Player preferences shared by every difficulty.

package progress

import (
	"context"
	"fmt"

	"github.com/robalobadob/wordguess/internal/game"
)

// Settings are the player's preferences.
type Settings struct {
	Difficulty   game.Difficulty `json:"difficulty"`
	MusicEnabled bool            `json:"music"`
	SoundEnabled bool            `json:"sound"`
}

// DefaultSettings is what a first run starts with.
func DefaultSettings() Settings {
	return Settings{Difficulty: game.Medium, MusicEnabled: true, SoundEnabled: true}
}

// Settings loads the preferences, falling back to defaults per key.
// An out-of-range stored difficulty reads as Medium.
func (s *Store) Settings(ctx context.Context) (Settings, error) {
	def := DefaultSettings()
	r := &read{ctx: ctx, kv: s.kv}
	d := game.Difficulty(r.num("GameDifficulty", int(def.Difficulty)))
	if !d.Valid() {
		d = game.Medium
	}
	out := Settings{
		Difficulty:   d,
		MusicEnabled: r.num("MusicEnabled", 1) == 1,
		SoundEnabled: r.num("SoundEnabled", 1) == 1,
	}
	if r.err != nil {
		return def, fmt.Errorf("load settings: %w", r.err)
	}
	return out, nil
}

// SaveSettings persists the preferences.
func (s *Store) SaveSettings(ctx context.Context, st Settings) error {
	if !st.Difficulty.Valid() {
		return game.ErrInvalidDifficulty
	}
	b := &batch{ctx: ctx, kv: s.kv}
	b.num("GameDifficulty", int(st.Difficulty))
	b.num("MusicEnabled", boolInt(st.MusicEnabled))
	b.num("SoundEnabled", boolInt(st.SoundEnabled))
	if err := b.flush(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
