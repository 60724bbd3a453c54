// internal/progress/progress.go
//
// Store is the game-progress record keeper and the only writer of persisted
// state. Everything is keyed by difficulty so the three tiers never share a
// record.
//
// Key layout (prefix is the difficulty name, e.g. "Easy"):
//   <D>_HasUnfinishedGame, <D>_SavedWord, <D>_SavedRowIndex,
//   <D>_SavedColumnIndex, <D>_SavedGuessCount, <D>_SavedKeyboardState,
//   <D>_SavedBoard_<row>, <D>_SavedStates_<row>
//   <D>_GamesPlayed, <D>_GamesWon, <D>_CurrentStreak, <D>_MaxStreak, <D>_Guess_<0..6>
//   GameDifficulty, MusicEnabled, SoundEnabled
//
// Every write batch ends with a Flush.

package progress

import (
	"context"
	"fmt"
	"strconv"

	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/store"
)

// Store reads and writes saves, statistics and settings.
type Store struct {
	kv store.Store
}

// New wraps a key/value backend.
func New(kv store.Store) *Store {
	return &Store{kv: kv}
}

func key(d game.Difficulty, name string) string {
	return d.String() + "_" + name
}

func rowKey(d game.Difficulty, name string, i int) string {
	return key(d, name+"_"+strconv.Itoa(i))
}

// batch runs a series of writes and keeps the first error.
type batch struct {
	ctx context.Context
	kv  store.Store
	err error
}

func (b *batch) str(k, v string) {
	if b.err == nil {
		b.err = b.kv.SetString(b.ctx, k, v)
	}
}

func (b *batch) num(k string, v int) {
	if b.err == nil {
		b.err = b.kv.SetInt(b.ctx, k, v)
	}
}

func (b *batch) del(k string) {
	if b.err == nil {
		b.err = b.kv.Delete(b.ctx, k)
	}
}

func (b *batch) flush() error {
	if b.err == nil {
		b.err = b.kv.Flush(b.ctx)
	}
	return b.err
}

// read runs a series of reads and keeps the first error.
type read struct {
	ctx context.Context
	kv  store.Store
	err error
}

func (r *read) str(k, def string) string {
	if r.err != nil {
		return def
	}
	v, err := r.kv.GetString(r.ctx, k, def)
	r.err = err
	return v
}

func (r *read) has(k string) bool {
	if r.err != nil {
		return false
	}
	ok, err := r.kv.HasKey(r.ctx, k)
	r.err = err
	return ok
}

func (r *read) num(k string, def int) int {
	if r.err != nil {
		return def
	}
	v, err := r.kv.GetInt(r.ctx, k, def)
	r.err = err
	return v
}

// SaveGame stores the snapshot of an unfinished game.
func (s *Store) SaveGame(ctx context.Context, sv game.Save) error {
	d := sv.Difficulty
	b := &batch{ctx: ctx, kv: s.kv}
	b.num(key(d, "HasUnfinishedGame"), 1)
	b.str(key(d, "SavedWord"), sv.Word)
	b.num(key(d, "SavedRowIndex"), sv.RowIndex)
	b.num(key(d, "SavedColumnIndex"), sv.ColumnIndex)
	b.num(key(d, "SavedGuessCount"), sv.GuessCount)
	b.str(key(d, "SavedKeyboardState"), sv.KeyboardState)
	for i := range game.Rows {
		b.str(rowKey(d, "SavedBoard", i), sv.Board[i])
		b.str(rowKey(d, "SavedStates", i), sv.TileStates[i])
	}
	if err := b.flush(); err != nil {
		return fmt.Errorf("save game %s: %w", d, err)
	}
	return nil
}

// LoadGame returns the saved game for d. ok is false when there is none.
// A set flag with no saved word is reported as game.ErrCorruptSave.
func (s *Store) LoadGame(ctx context.Context, d game.Difficulty) (sv game.Save, ok bool, err error) {
	r := &read{ctx: ctx, kv: s.kv}
	if r.num(key(d, "HasUnfinishedGame"), 0) != 1 {
		if r.err != nil {
			return game.Save{}, false, fmt.Errorf("load game %s: %w", d, r.err)
		}
		return game.Save{}, false, nil
	}
	if !r.has(key(d, "SavedWord")) {
		if r.err != nil {
			return game.Save{}, false, fmt.Errorf("load game %s: %w", d, r.err)
		}
		return game.Save{}, false, fmt.Errorf("load game %s: %w: flag set without a word", d, game.ErrCorruptSave)
	}
	sv = game.Save{
		Difficulty:        d,
		HasUnfinishedGame: true,
		Word:              r.str(key(d, "SavedWord"), ""),
		RowIndex:          r.num(key(d, "SavedRowIndex"), 0),
		ColumnIndex:       r.num(key(d, "SavedColumnIndex"), 0),
		GuessCount:        r.num(key(d, "SavedGuessCount"), 0),
		KeyboardState:     r.str(key(d, "SavedKeyboardState"), ""),
	}
	for i := range game.Rows {
		sv.Board[i] = r.str(rowKey(d, "SavedBoard", i), "")
		sv.TileStates[i] = r.str(rowKey(d, "SavedStates", i), "")
	}
	if r.err != nil {
		return game.Save{}, false, fmt.Errorf("load game %s: %w", d, r.err)
	}
	return sv, true, nil
}

// HasUnfinishedGame reports whether d has a resumable save.
func (s *Store) HasUnfinishedGame(ctx context.Context, d game.Difficulty) (bool, error) {
	v, err := s.kv.GetInt(ctx, key(d, "HasUnfinishedGame"), 0)
	return v == 1, err
}

// ClearGame drops the saved game for d.
func (s *Store) ClearGame(ctx context.Context, d game.Difficulty) error {
	b := &batch{ctx: ctx, kv: s.kv}
	b.num(key(d, "HasUnfinishedGame"), 0)
	for _, name := range []string{"SavedWord", "SavedRowIndex", "SavedColumnIndex", "SavedGuessCount", "SavedKeyboardState"} {
		b.del(key(d, name))
	}
	for i := range game.Rows {
		b.del(rowKey(d, "SavedBoard", i))
		b.del(rowKey(d, "SavedStates", i))
	}
	if err := b.flush(); err != nil {
		return fmt.Errorf("clear game %s: %w", d, err)
	}
	return nil
}
