package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/tomz197/knockoffs/internal/config"
	"github.com/tomz197/knockoffs/internal/draw"
	"github.com/tomz197/knockoffs/internal/loop/client"
	"github.com/tomz197/knockoffs/internal/loop/server"
	"github.com/tomz197/knockoffs/internal/score"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownGrace      = 15 * time.Second
)

// game holds what every SSH session shares: settings, the leaderboard and
// the registry of live sessions.
type game struct {
	settings *config.Settings
	board    *score.Leaderboard
	sessions *registry
	logger   *log.Logger
}

func main() {
	logger := config.NewLogger(os.Stderr, log.InfoLevel)
	log.SetDefault(logger)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	scoresPath := config.GetEnv("KNOCKOFFS_SCORES", score.DefaultPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "scores", scoresPath)

	settings, err := config.FromEnv()
	if err != nil {
		logger.Fatal("load settings", "err", err)
	}
	board, err := score.LoadLeaderboard(scoresPath)
	if err != nil {
		logger.Fatal("load leaderboard", "err", err)
	}

	g := &game{
		settings: settings,
		board:    board,
		sessions: newRegistry(),
		logger:   logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("create ssh server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info("starting ssh server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		logger.Info("notifying players about shutdown", "sessions", g.sessions.count())
		if left := g.sessions.shutdown(shutdownGrace); left > 0 {
			logger.Warn("sessions still connected", "sessions", left)
		}

		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(sctx)
	})

	if err := eg.Wait(); err != nil {
		logger.Fatal("ssh server", "err", err)
	}
	logger.Info("server stopped")
}

// middleware runs one private game per SSH session.
func (g *game) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		id := uuid.New()
		logger := g.logger.With("user", sess.User())
		logger.Info("new game session", "session", id, "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		srv, err := server.NewServer(g.settings, server.Options{
			ID:        id.String(),
			HighScore: g.board.High(),
			Logger:    logger,
		})
		if err != nil {
			logger.Error("create game server", "err", err)
			return
		}
		g.sessions.add(id, srv)
		defer g.sessions.remove(id)

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		go srv.Run(ctx)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c := client.NewClient(srv, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Leaderboard:  g.board,
			Logger:       logger,
		})
		if err := c.Run(ctx); err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "session", id)
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
