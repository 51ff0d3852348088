package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/abiparse/internal/abi"
	"github.com/okra-platform/abiparse/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func formats() string {
	names := make([]string, 0, len(abi.Formats()))
	for _, f := range abi.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	outputFlags := func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "abi encoding (" + formats() + ")",
				Destination: &ctrl.Flags.Format,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write the abi to a file instead of stdout",
				Destination: &ctrl.Flags.Output,
			},
		}
	}

	app := &cli.Command{
		Name:    "abiparse",
		Usage:   "Extract a wrap ABI from a GraphQL schema and resolve its imports",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ABIPARSE_LOG_LEVEL"),
				Value:       "info",
				Destination: &ctrl.Flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to abiparse.json (default: search the current and parent directories)",
				Sources:     cli.EnvVars("ABIPARSE_CONFIG"),
				Destination: &ctrl.Flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Logger = log.Logger

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Print the ABI of a schema",
				ArgsUsage: "[schema]",
				Flags:     outputFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Parse(ctx, c.Args().First())
				},
			},
			{
				Name:      "imports",
				Usage:     "Resolve and print the import dependency tree of one or more schemas",
				ArgsUsage: "[schema...]",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Imports(ctx, c.Args().Slice())
				},
			},
			{
				Name:      "watch",
				Usage:     "Rebuild the ABI whenever a schema changes",
				ArgsUsage: "[schema]",
				Flags:     outputFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx, c.Args().First())
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run abiparse")
	}
}
