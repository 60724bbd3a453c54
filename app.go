package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordguess/internal/challenge"
	"github.com/robalobadob/wordguess/internal/config"
	"github.com/robalobadob/wordguess/internal/game"
	"github.com/robalobadob/wordguess/internal/httpserver"
	"github.com/robalobadob/wordguess/internal/keyboard"
	"github.com/robalobadob/wordguess/internal/progress"
	"github.com/robalobadob/wordguess/internal/store"
	"github.com/robalobadob/wordguess/internal/words"
)

// openStore opens the backend selected by WORDGUESS_STORAGE.
func openStore(cfg config.Config) (store.Store, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("using in-memory storage; progress is lost on exit")
		return store.NewMemoryStore(), nil
	}
	st, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.DBPath, err)
	}
	log.Info().Str("path", cfg.DBPath).Msg("sqlite ready")
	return st, nil
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dict, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}
	a, g := dict.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("word lists loaded")

	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()

	issuer, err := challenge.NewIssuer(cfg.ChallengeSecret, cfg.ChallengeTTL, dict)
	if err != nil {
		return err
	}
	p := progress.New(kv)
	srv := httpserver.New(httpserver.Deps{
		Session:      game.NewSession(dict, keyboard.New(), p, p),
		Progress:     p,
		Dict:         dict,
		Challenges:   issuer,
		DailySalt:    cfg.DailySalt,
		ClientOrigin: cfg.ClientOrigin,
	})
	return srv.Run(ctx, cfg.Addr())
}

// withProgress opens the configured store for a one-shot command.
func withProgress(fn func(*progress.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()
	return fn(progress.New(kv))
}

// selected parses the --difficulty flag; empty means all of them.
func selected(flag string) ([]game.Difficulty, error) {
	if flag == "" {
		return game.Difficulties, nil
	}
	d, err := game.ParseDifficulty(flag)
	if err != nil {
		return nil, err
	}
	return []game.Difficulty{d}, nil
}

func printStats(ctx context.Context, w io.Writer, flag string) error {
	ds, err := selected(flag)
	if err != nil {
		return err
	}
	return withProgress(func(p *progress.Store) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DIFFICULTY\tPLAYED\tWIN %\tSTREAK\tMAX\t1\t2\t3\t4\t5\t6\tX")
		for _, d := range ds {
			st, err := p.Stats(ctx, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%d\t%.0f\t%d\t%d", d, st.GamesPlayed, st.WinPercentage(), st.CurrentStreak, st.MaxStreak)
			for _, n := range st.GuessDistribution {
				fmt.Fprintf(tw, "\t%d", n)
			}
			fmt.Fprintln(tw)
		}
		return tw.Flush()
	})
}

func resetStats(ctx context.Context, w io.Writer, flag string) error {
	ds, err := selected(flag)
	if err != nil {
		return err
	}
	return withProgress(func(p *progress.Store) error {
		for _, d := range ds {
			if err := p.ResetStats(ctx, d); err != nil {
				return err
			}
			fmt.Fprintf(w, "reset %s\n", d)
		}
		return nil
	})
}
