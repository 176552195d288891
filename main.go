package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/tictactoe-server/internal"
	"github.com/rocketscienceinc/tictactoe-server/internal/config"
)

// main - is the entry point of the application. It loads .env, parses the command line and runs
// the selected command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "tictactoe",
		Usage: "two-player tic-tac-toe server with a crash-safe move log",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yml",
				Usage:   "path to the yml config file",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "restore the game from the move log and serve HTTP",
				Action: serve,
			},
			{
				Name:   "replay",
				Usage:  "replay the move log and print the reconstructed game as JSON",
				Action: replay,
			},
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	conf := config.MustLoad(cmd.String("config"))
	logger := initLogger(conf)

	if err := app.RunApp(ctx, logger, conf); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}

	return nil
}

func replay(ctx context.Context, cmd *cli.Command) error {
	conf := config.MustLoad(cmd.String("config"))

	if err := app.RunReplay(ctx, conf, os.Stdout); err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	return nil
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
