package main

import (
	"errors"
	"testing"

	"golang.org/x/term"
)

// fakeTerminal replaces the raw mode hooks for one test.
func fakeTerminal(t *testing.T, rawErr error) *[]string {
	t.Helper()
	var calls []string
	oldRaw, oldRestore := makeRaw, restoreTerm
	makeRaw = func(fd int) (*term.State, error) {
		calls = append(calls, "raw")
		return &term.State{}, rawErr
	}
	restoreTerm = func(fd int, _ *term.State) error {
		calls = append(calls, "restore")
		return nil
	}
	t.Cleanup(func() { makeRaw, restoreTerm = oldRaw, oldRestore })
	return &calls
}

func TestWithRawTerminalRestoresOnError(t *testing.T) {
	calls := fakeTerminal(t, nil)
	boom := errors.New("boom")

	err := withRawTerminal(0, func() error {
		*calls = append(*calls, "play")
		return boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if got := *calls; len(got) != 3 || got[0] != "raw" || got[1] != "play" || got[2] != "restore" {
		t.Errorf("calls = %v, want [raw play restore]", got)
	}
}

func TestWithRawTerminalRestoresOnPanic(t *testing.T) {
	calls := fakeTerminal(t, nil)

	func() {
		defer func() { _ = recover() }()
		_ = withRawTerminal(0, func() error { panic("crash") })
	}()

	if got := *calls; len(got) != 2 || got[1] != "restore" {
		t.Errorf("calls = %v, want [raw restore]", got)
	}
}

func TestWithRawTerminalRawModeFails(t *testing.T) {
	calls := fakeTerminal(t, errors.New("not a terminal"))
	ran := false

	err := withRawTerminal(0, func() error {
		ran = true
		return nil
	})

	if err == nil {
		t.Error("err = nil, want raw mode error")
	}
	if ran {
		t.Error("game ran without raw mode")
	}
	if got := *calls; len(got) != 1 {
		t.Errorf("calls = %v, want [raw] only", got)
	}
}
