package server

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/knockoffs/internal/config"
	"github.com/tomz197/knockoffs/internal/input"
)

func newTestServer(t *testing.T, s *config.Settings) *Server {
	t.Helper()
	srv, err := NewServer(s, Options{ID: t.Name(), Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func drain(ch <-chan ClientEvent) []ClientEvent {
	var out []ClientEvent
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestNewServerRejectsInvalidSettings(t *testing.T) {
	s := testSettings()
	s.Area.Width = 0

	srv, err := NewServer(s, Options{Logger: log.New(io.Discard)})
	if !errors.Is(err, config.ErrInvalidArea) {
		t.Errorf("err = %v, want %v", err, config.ErrInvalidArea)
	}
	if srv != nil {
		t.Error("server returned alongside error")
	}
}

func TestServerInitialSnapshot(t *testing.T) {
	srv := newTestServer(t, testSettings())

	snap := srv.GetSnapshot()
	if snap == nil {
		t.Fatal("GetSnapshot() = nil before the first tick")
	}
	if len(snap.Enemies) != 64 {
		t.Errorf("enemies = %d, want 64", len(snap.Enemies))
	}
}

func TestServerInputMovesCraft(t *testing.T) {
	tests := []struct {
		name string
		in   input.Input
		sign int
	}{
		{"Right", input.Input{Right: true}, 1},
		{"Left", input.Input{Left: true}, -1},
		{"Idle", input.Input{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, testSettings())
			x0 := srv.GetSnapshot().Craft.X

			srv.SendInput(tt.in)
			srv.tick(50 * time.Millisecond)

			dx := srv.GetSnapshot().Craft.X - x0
			switch {
			case tt.sign > 0 && dx <= 0, tt.sign < 0 && dx >= 0, tt.sign == 0 && dx != 0:
				t.Errorf("craft moved %d, want sign %d", dx, tt.sign)
			}
		})
	}
}

func TestServerFiresOnPress(t *testing.T) {
	srv := newTestServer(t, testSettings())

	// Held Space across inputs is a single press.
	srv.SendInput(input.Input{Space: true})
	srv.SendInput(input.Input{Space: true})
	srv.tick(0)
	if got := len(srv.GetSnapshot().Projectiles); got != 1 {
		t.Fatalf("projectiles = %d after one press, want 1", got)
	}

	srv.SendInput(input.Input{})
	srv.SendInput(input.Input{Space: true})
	srv.tick(0)
	if got := len(srv.GetSnapshot().Projectiles); got != 2 {
		t.Errorf("projectiles = %d after two presses, want 2", got)
	}
}

func TestServerReset(t *testing.T) {
	srv := newTestServer(t, testSettings())
	srv.world.Score.AddScore(30)

	srv.Reset()
	srv.Reset()
	srv.tick(0)

	snap := srv.GetSnapshot()
	if snap.Score != 0 || snap.High != 30 {
		t.Errorf("score = %d high = %d, want 0 and 30", snap.Score, snap.High)
	}
}

func TestServerPublishesEvents(t *testing.T) {
	s := testSettings()
	s.Formation.Columns, s.Formation.Rows = 1, 1
	srv := newTestServer(t, s)
	aimAt(t, srv.world, srv.world.Formation.Enemies()[0])

	srv.tick(0)

	got := eventTypes(drain(srv.Events()))
	if len(got) != 2 || got[0] != EventEnemyShot || got[1] != EventFormationCleared {
		t.Errorf("events = %v, want [enemy-shot formation-cleared]", got)
	}
	if srv.GetSnapshot().Score != 10 {
		t.Errorf("score = %d, want 10", srv.GetSnapshot().Score)
	}
}

func TestServerTagsEventsWithGame(t *testing.T) {
	s := testSettings()
	s.Formation.Columns, s.Formation.Rows = 1, 1
	srv := newTestServer(t, s)

	if n := srv.Reset(); n != 1 {
		t.Fatalf("Reset() = %d, want 1", n)
	}
	game := srv.Reset()
	if game != 2 {
		t.Fatalf("Reset() = %d, want 2", game)
	}
	srv.tick(0)

	aimAt(t, srv.world, srv.world.Formation.Enemies()[0])
	srv.tick(0)

	events := drain(srv.Events())
	if len(events) == 0 {
		t.Fatal("no events after a hit")
	}
	for _, ev := range events {
		if ev.Game != game {
			t.Errorf("%v event game = %d, want %d", ev.Type, ev.Game, game)
		}
	}
}

func TestServerShutdown(t *testing.T) {
	srv := newTestServer(t, testSettings())
	srv.Shutdown()

	got := drain(srv.Events())
	if len(got) != 1 || got[0].Type != EventServerShutdown {
		t.Errorf("events = %v, want [server-shutdown]", eventTypes(got))
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	srv := newTestServer(t, testSettings())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		srv.Run(ctx)
		close(done)
	}()

	time.Sleep(3 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
