// internal/progress/stats.go
//
// Per-difficulty statistics. Updates are read-modify-write and flushed at once.

package progress

import (
	"context"
	"fmt"

	"github.com/robalobadob/wordguess/internal/game"
)

// Stats loads the statistics for d. Missing keys read as zero.
func (s *Store) Stats(ctx context.Context, d game.Difficulty) (game.Stats, error) {
	r := &read{ctx: ctx, kv: s.kv}
	st := game.Stats{
		GamesPlayed:   r.num(key(d, "GamesPlayed"), 0),
		GamesWon:      r.num(key(d, "GamesWon"), 0),
		CurrentStreak: r.num(key(d, "CurrentStreak"), 0),
		MaxStreak:     r.num(key(d, "MaxStreak"), 0),
	}
	for i := range st.GuessDistribution {
		st.GuessDistribution[i] = r.num(rowKey(d, "Guess", i), 0)
	}
	if r.err != nil {
		return game.Stats{}, fmt.Errorf("load stats %s: %w", d, r.err)
	}
	return st, nil
}

func (s *Store) writeStats(ctx context.Context, d game.Difficulty, st game.Stats) error {
	b := &batch{ctx: ctx, kv: s.kv}
	b.num(key(d, "GamesPlayed"), st.GamesPlayed)
	b.num(key(d, "GamesWon"), st.GamesWon)
	b.num(key(d, "CurrentStreak"), st.CurrentStreak)
	b.num(key(d, "MaxStreak"), st.MaxStreak)
	for i, n := range st.GuessDistribution {
		b.num(rowKey(d, "Guess", i), n)
	}
	if err := b.flush(); err != nil {
		return fmt.Errorf("save stats %s: %w", d, err)
	}
	return nil
}

func (s *Store) update(ctx context.Context, d game.Difficulty, fn func(*game.Stats)) error {
	st, err := s.Stats(ctx, d)
	if err != nil {
		return err
	}
	fn(&st)
	return s.writeStats(ctx, d, st)
}

// RecordWin counts a win for d in guesses attempts and persists immediately.
func (s *Store) RecordWin(ctx context.Context, d game.Difficulty, guesses int) error {
	return s.update(ctx, d, func(st *game.Stats) { st.RecordWin(guesses) })
}

// RecordLoss counts a loss for d and persists immediately.
func (s *Store) RecordLoss(ctx context.Context, d game.Difficulty) error {
	return s.update(ctx, d, func(st *game.Stats) { st.RecordLoss() })
}

// ResetStats zeroes the statistics of d.
func (s *Store) ResetStats(ctx context.Context, d game.Difficulty) error {
	return s.writeStats(ctx, d, game.Stats{})
}

// ResetAllStats zeroes the statistics of every difficulty.
func (s *Store) ResetAllStats(ctx context.Context) error {
	for _, d := range game.Difficulties {
		if err := s.ResetStats(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
