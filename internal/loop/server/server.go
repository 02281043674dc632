package server

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/knockoffs/internal/config"
	"github.com/tomz197/knockoffs/internal/input"
	loopcfg "github.com/tomz197/knockoffs/internal/loop/config"
	"github.com/tomz197/knockoffs/internal/object"
)

// GameServer is the interface clients use to communicate with the game server.
type GameServer interface {
	SendInput(in input.Input)
	GetSnapshot() *WorldSnapshot
	Events() <-chan ClientEvent
	Reset() uint64
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type       ClientEventType
	ScoreAdd   int    // For EventEnemyShot
	Generation int    // For formation events
	Game       uint64 // Reset count of the world that produced the event
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventEnemyShot ClientEventType = iota
	EventCraftHit
	EventEnemyLanded
	EventFormationCleared
	EventFormationRebuilt
	EventServerShutdown
)

func (t ClientEventType) String() string {
	switch t {
	case EventEnemyShot:
		return "enemy-shot"
	case EventCraftHit:
		return "craft-hit"
	case EventEnemyLanded:
		return "enemy-landed"
	case EventFormationCleared:
		return "formation-cleared"
	case EventFormationRebuilt:
		return "formation-rebuilt"
	case EventServerShutdown:
		return "server-shutdown"
	default:
		return "unknown"
	}
}

// Options configures a Server.
type Options struct {
	ID        string      // Session id, attached to every log line
	HighScore int         // Seeds the scoreboard
	Logger    *log.Logger // Defaults to log.Default()
}

// Server runs one session's world on its own goroutine and publishes a
// snapshot after every tick.
type Server struct {
	world    *World
	snapshot atomic.Pointer[WorldSnapshot]
	inputCh  chan input.Input
	resetCh  chan struct{}
	eventsCh chan ClientEvent
	logger   *log.Logger

	requested atomic.Uint64 // Last game number handed out by Reset
	game      uint64        // Game the world is running, tick goroutine only

	// Space must be released between shots.
	spaceHeld bool
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a session server. The world is built immediately so
// that settings errors surface before Run.
func NewServer(s *config.Settings, opts Options) (*Server, error) {
	world, err := NewWorld(s, opts.HighScore)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.ID != "" {
		logger = logger.With("session", opts.ID)
	}

	srv := &Server{
		world:    world,
		inputCh:  make(chan input.Input, 256),
		resetCh:  make(chan struct{}, 1),
		eventsCh: make(chan ClientEvent, loopcfg.EventBuffer),
		logger:   logger,
	}
	srv.snapshot.Store(world.Snapshot())
	return srv, nil
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	area := s.world.Area()
	s.logger.Info("session started", "width", area.W, "height", area.H)
	defer func() {
		s.logger.Info("session stopped", "ticks", s.world.Tick(), "score", s.world.Score.Score())
	}()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		s.tick(delta)

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < loopcfg.ServerTickTime {
			time.Sleep(loopcfg.ServerTickTime - elapsed)
		}
	}
}

// Shutdown notifies the client that the server is going away. The caller
// should cancel the server context afterwards.
func (s *Server) Shutdown() {
	select {
	case s.eventsCh <- ClientEvent{Type: EventServerShutdown}:
	default:
		s.logger.Warn("event buffer full, shutdown notice dropped")
	}
}

// SendInput queues the client's input for the next tick.
func (s *Server) SendInput(in input.Input) {
	select {
	case s.inputCh <- in:
	default:
		// Input channel full, drop input
	}
}

// GetSnapshot returns the current world snapshot.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

// Events returns the channel the server publishes game events on.
func (s *Server) Events() <-chan ClientEvent {
	return s.eventsCh
}

// Reset asks the server to start a new game on its next tick and returns
// that game's number. Events from earlier games carry a smaller Game.
func (s *Server) Reset() uint64 {
	n := s.requested.Add(1)
	select {
	case s.resetCh <- struct{}{}:
	default:
	}
	return n
}

// tick runs one server frame: pending reset, inputs, simulation, events and
// the new snapshot.
func (s *Server) tick(delta time.Duration) {
	select {
	case <-s.resetCh:
		s.world.Reset()
		s.game = s.requested.Load()
		s.spaceHeld = false
		s.logger.Debug("world reset", "game", s.game)
	default:
	}

	s.collectInputs()

	for _, ev := range s.world.Step(delta) {
		s.publish(ev)
	}

	s.snapshot.Store(s.world.Snapshot())
}

// collectInputs applies all pending inputs in order. Movement follows the
// latest held state; a shot fires on each press of Space.
func (s *Server) collectInputs() {
	for {
		select {
		case in := <-s.inputCh:
			s.world.Craft.SetMoving(object.DirLeft, in.Left)
			s.world.Craft.SetMoving(object.DirRight, in.Right)
			if in.Space && !s.spaceHeld {
				s.world.Fire()
			}
			s.spaceHeld = in.Space
		default:
			return
		}
	}
}

func (s *Server) publish(ev ClientEvent) {
	ev.Game = s.game
	switch ev.Type {
	case EventEnemyShot:
		s.logger.Debug("enemy shot", "points", ev.ScoreAdd)
	case EventFormationRebuilt:
		s.logger.Debug("formation rebuilt", "generation", ev.Generation)
	case EventCraftHit, EventEnemyLanded:
		s.logger.Debug("round lost", "event", ev.Type, "score", s.world.Score.Score())
	}

	select {
	case s.eventsCh <- ev:
	default:
		s.logger.Warn("event buffer full, dropping event", "event", ev.Type)
	}
}
