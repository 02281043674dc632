package client

import (
	"bufio"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/knockoffs/internal/input"
	"github.com/tomz197/knockoffs/internal/loop/config"
	"github.com/tomz197/knockoffs/internal/loop/server"
	"github.com/tomz197/knockoffs/internal/physics"
	"github.com/tomz197/knockoffs/internal/score"
)

// fakeServer records what the client asks of it.
type fakeServer struct {
	snapshot *server.WorldSnapshot
	events   chan server.ClientEvent
	inputs   []input.Input
	resets   int
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		snapshot: &server.WorldSnapshot{
			Area:    physics.Rect{W: 800, H: 600},
			Craft:   physics.Rect{X: 360, Y: 534, W: 82, H: 66},
			Enemies: []server.EnemyView{{Rect: physics.Rect{W: 45, H: 36}}},
		},
		events: make(chan server.ClientEvent, 16),
	}
}

func (f *fakeServer) SendInput(in input.Input)           { f.inputs = append(f.inputs, in) }
func (f *fakeServer) GetSnapshot() *server.WorldSnapshot { return f.snapshot }
func (f *fakeServer) Events() <-chan server.ClientEvent  { return f.events }
func (f *fakeServer) Reset() uint64                      { f.resets++; return uint64(f.resets) }

func newTestClient(t *testing.T, gs server.GameServer, board *score.Leaderboard) (*Client, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	c := NewClient(gs, bufio.NewReader(strings.NewReader("")), out, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		Leaderboard:  board,
		Logger:       log.New(io.Discard),
	})
	return c, out
}

func newTestBoard(t *testing.T) *score.Leaderboard {
	t.Helper()
	board, err := score.LoadLeaderboard(filepath.Join(t.TempDir(), "scores.json"))
	if err != nil {
		t.Fatalf("LoadLeaderboard: %v", err)
	}
	return board
}

func TestClientStartsGame(t *testing.T) {
	gs := newFakeServer()
	c, _ := newTestClient(t, gs, nil)

	c.state.Input = input.Input{Space: true}
	c.updateStartState()

	if c.state.GameState != GameStatePlaying {
		t.Errorf("state = %v, want playing", c.state.GameState)
	}
	if gs.resets != 1 {
		t.Errorf("resets = %d, want 1", gs.resets)
	}
	if c.state.Lives != config.InitialLives {
		t.Errorf("lives = %d, want %d", c.state.Lives, config.InitialLives)
	}
}

func TestClientLosesLives(t *testing.T) {
	tests := []struct {
		name      string
		events    []server.ClientEventType
		wantLives int
		wantState GameState
	}{
		{"Hit", []server.ClientEventType{server.EventCraftHit}, 2, GameStatePlaying},
		{"Landing", []server.ClientEventType{server.EventEnemyLanded}, 2, GameStatePlaying},
		{"Shots cost nothing", []server.ClientEventType{server.EventEnemyShot, server.EventFormationCleared}, 3, GameStatePlaying},
		{"Out of lives", []server.ClientEventType{server.EventCraftHit, server.EventEnemyLanded, server.EventCraftHit}, 0, GameStateGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := newFakeServer()
			c, _ := newTestClient(t, gs, nil)
			c.startGame()

			for _, typ := range tt.events {
				gs.events <- server.ClientEvent{Type: typ, Game: c.state.game}
			}
			c.processServerEvents()

			if c.state.Lives != tt.wantLives {
				t.Errorf("lives = %d, want %d", c.state.Lives, tt.wantLives)
			}
			if c.state.GameState != tt.wantState {
				t.Errorf("state = %v, want %v", c.state.GameState, tt.wantState)
			}
		})
	}
}

func TestClientIgnoresHitsOutsidePlay(t *testing.T) {
	gs := newFakeServer()
	c, _ := newTestClient(t, gs, nil)

	gs.events <- server.ClientEvent{Type: server.EventCraftHit}
	c.processServerEvents()

	if c.state.Lives != config.InitialLives {
		t.Errorf("lives = %d on the title screen, want %d", c.state.Lives, config.InitialLives)
	}
}

func TestClientIgnoresEventsFromOldGame(t *testing.T) {
	gs := newFakeServer()
	c, _ := newTestClient(t, gs, nil)
	c.startGame()
	c.state.Lives = 1
	c.startGame()

	// The server has not applied the second reset yet.
	gs.events <- server.ClientEvent{Type: server.EventCraftHit, Game: 1}
	c.processServerEvents()
	if c.state.Lives != config.InitialLives || c.state.GameState != GameStatePlaying {
		t.Fatalf("lives = %d state = %v after a stale hit, want %d and playing",
			c.state.Lives, c.state.GameState, config.InitialLives)
	}

	gs.events <- server.ClientEvent{Type: server.EventCraftHit, Game: 2}
	c.processServerEvents()
	if c.state.Lives != config.InitialLives-1 {
		t.Errorf("lives = %d, want %d", c.state.Lives, config.InitialLives-1)
	}
}

func TestClientShutdownEvent(t *testing.T) {
	gs := newFakeServer()
	c, _ := newTestClient(t, gs, nil)

	gs.events <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()

	if c.state.GameState != GameStateShutdown {
		t.Fatalf("state = %v, want shutdown", c.state.GameState)
	}

	c.state.delta = 11 * time.Second
	c.updateShutdownState()
	if c.state.Running {
		t.Error("still running after the shutdown countdown")
	}
}

func TestClientGameOverRestart(t *testing.T) {
	gs := newFakeServer()
	c, _ := newTestClient(t, gs, nil)
	c.startGame()
	c.state.Lives = 1

	gs.events <- server.ClientEvent{Type: server.EventCraftHit, Game: c.state.game}
	c.processServerEvents()

	if c.state.Entering {
		t.Error("entering initials without a leaderboard")
	}
	if last := gs.inputs[len(gs.inputs)-1]; last.Left || last.Right || last.Space {
		t.Errorf("last input = %+v, want everything released", last)
	}

	c.state.Input = input.Input{Space: true}
	c.updateGameOverState()

	if c.state.GameState != GameStatePlaying || c.state.Lives != config.InitialLives {
		t.Errorf("state = %v lives = %d, want a fresh game", c.state.GameState, c.state.Lives)
	}
	if gs.resets != 2 {
		t.Errorf("resets = %d, want 2", gs.resets)
	}
}

func TestClientSubmitsInitials(t *testing.T) {
	gs := newFakeServer()
	gs.snapshot.Score = 120
	board := newTestBoard(t)
	c, _ := newTestClient(t, gs, board)
	c.startGame()
	c.state.Lives = 1

	gs.events <- server.ClientEvent{Type: server.EventEnemyLanded, Game: c.state.game}
	c.processServerEvents()

	if !c.state.Entering {
		t.Fatal("not entering initials for a qualifying score")
	}

	steps := []input.Input{
		{Pressed: []byte("ab")},
		{Backspace: true, Pressed: []byte{'\b'}},
		{Pressed: []byte("qz!9")},
		{Enter: true, Pressed: []byte{'\r'}},
	}
	for _, in := range steps {
		c.state.Input = in
		c.updateGameOverState()
	}

	if c.state.Entering || !c.state.Submitted {
		t.Fatalf("entering = %v submitted = %v, want submitted", c.state.Entering, c.state.Submitted)
	}
	if c.state.Rank != 1 {
		t.Errorf("rank = %d, want 1", c.state.Rank)
	}
	entries := board.Entries()
	if len(entries) != 1 || entries[0].Initials != "AQZ" || entries[0].Score != 120 {
		t.Errorf("entries = %+v, want AQZ with 120", entries)
	}

	reloaded, err := score.LoadLeaderboard(board.Path())
	if err != nil {
		t.Fatalf("LoadLeaderboard: %v", err)
	}
	if reloaded.High() != 120 {
		t.Errorf("saved high = %d, want 120", reloaded.High())
	}
}

func TestClientInitialsAreCapped(t *testing.T) {
	gs := newFakeServer()
	c, _ := newTestClient(t, gs, nil)
	c.state.Entering = true
	c.state.GameState = GameStateGameOver

	c.state.Input = input.Input{Quit: true, Pressed: []byte("qwer")}
	c.updateGameOverState()

	if string(c.state.Initials) != "QWE" {
		t.Errorf("initials = %q, want %q", c.state.Initials, "QWE")
	}
}

func TestClientDrawsHUD(t *testing.T) {
	gs := newFakeServer()
	gs.snapshot.Score = 70
	c, out := newTestClient(t, gs, nil)
	c.startGame()

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}

	if !strings.Contains(out.String(), "Score: 70") {
		t.Errorf("frame has no score line:\n%q", out.String())
	}
	if !strings.Contains(out.String(), "Lives: ^ ^ ^") {
		t.Errorf("frame has no lives line:\n%q", out.String())
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h               int
		wantW, wantH       int
		wantOffC, wantOffR int
	}{
		{80, 24, 80, 24, 0, 0},
		{200, 80, config.MaxTermWidth, config.MaxTermHeight, 20, 10},
	}

	for _, tt := range tests {
		w, h, oc, or := clampTermSize(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH || oc != tt.wantOffC || or != tt.wantOffR {
			t.Errorf("clampTermSize(%d, %d) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
				tt.w, tt.h, w, h, oc, or, tt.wantW, tt.wantH, tt.wantOffC, tt.wantOffR)
		}
	}
}
