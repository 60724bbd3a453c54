// main.go
//
// Entry point for the word-guess service.
//   wordguess [serve]                       run the HTTP game API (default)
//   wordguess stats [--difficulty D]        print statistics
//   wordguess reset-stats [--difficulty D]  zero statistics
//
// Configuration comes from the environment (and .env), see internal/config.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/robalobadob/wordguess/internal/config"
)

func main() {
	pretty := false
	difficulty := ""

	difficultyFlag := &cli.StringFlag{
		Name:        "difficulty",
		Aliases:     []string{"d"},
		Usage:       "Easy, Medium or Hard; all difficulties when empty",
		Destination: &difficulty,
	}

	cmd := &cli.Command{
		Name:  "wordguess",
		Usage: "five-letter word guessing game",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "pretty",
				Usage:       "human readable console logs",
				Destination: &pretty,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if pretty {
				log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			}
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return serve(ctx)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP game API",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return serve(ctx)
				},
			},
			{
				Name:  "stats",
				Usage: "print statistics",
				Flags: []cli.Flag{difficultyFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return printStats(ctx, os.Stdout, difficulty)
				},
			},
			{
				Name:  "reset-stats",
				Usage: "zero statistics",
				Flags: []cli.Flag{difficultyFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return resetStats(ctx, os.Stdout, difficulty)
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("wordguess")
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	zerolog.SetGlobalLevel(cfg.Level())
	return cfg, nil
}
