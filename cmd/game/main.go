package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/knockoffs/internal/config"
	"github.com/tomz197/knockoffs/internal/loop/client"
	"github.com/tomz197/knockoffs/internal/loop/server"
	"github.com/tomz197/knockoffs/internal/score"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Swapped in tests, which have no terminal.
var (
	makeRaw     = term.MakeRaw
	restoreTerm = term.Restore
)

func main() {
	// The game owns the terminal, so only errors reach stderr unless a log
	// file is given.
	logOut := os.Stderr
	if path := config.GetEnv("KNOCKOFFS_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal("open log file", "path", path, "err", err)
		}
		logOut = f
	}
	logger := config.NewLogger(logOut, log.ErrorLevel)

	err := run(logger)
	if err != nil {
		logger.Error("game error", "err", err)
	}
	if logOut != os.Stderr {
		logOut.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

// run plays one local game. The terminal is back in its original mode by
// the time run returns.
func run(logger *log.Logger) error {
	settings, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	board, err := score.LoadLeaderboard(config.GetEnv("KNOCKOFFS_SCORES", score.DefaultPath))
	if err != nil {
		return fmt.Errorf("load leaderboard: %w", err)
	}
	srv, err := server.NewServer(settings, server.Options{
		ID:        "local",
		HighScore: board.High(),
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("create game server: %w", err)
	}

	return withRawTerminal(int(os.Stdin.Fd()), func() error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)
		ctx, cancel := context.WithCancel(ctx)

		g.Go(func() error {
			srv.Run(ctx)
			return nil
		})
		g.Go(func() error {
			defer cancel()
			c := client.NewClient(srv, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
				Leaderboard: board,
				Logger:      logger,
			})
			return c.Run(ctx)
		})
		return g.Wait()
	})
}

// withRawTerminal runs fn with fd in raw mode and restores it afterwards,
// also when fn fails or panics.
func withRawTerminal(fd int, fn func() error) error {
	oldState, err := makeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer restoreTerm(fd, oldState)
	return fn()
}
