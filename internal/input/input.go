// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// Terminals only report key repeats, so a held key is a stream of presses.
// A key counts as down for keyHoldDuration after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input is the key state for one frame.
type Input struct {
	Quit      bool
	Left      bool
	Right     bool
	Space     bool
	Enter     bool
	Backspace bool
	Delete    bool
	Escape    bool
	Pressed   []byte // Raw bytes read this frame
}

type key uint8

const (
	keyNone key = iota
	keyQuit
	keyLeft
	keyRight
	keySpace
	keyEnter
	keyBackspace
	keyDelete
	keyEscape
	numKeys
)

var byteKeys = map[byte]key{
	'q': keyQuit, 'Q': keyQuit,
	'a': keyLeft, 'A': keyLeft, 'j': keyLeft, 'J': keyLeft,
	'd': keyRight, 'D': keyRight, 'l': keyRight, 'L': keyRight,
	' ':    keySpace,
	'\n':   keyEnter,
	'\r':   keyEnter,
	'\b':   keyBackspace,
	'\x7f': keyDelete,
	'\x1b': keyEscape,
}

// csiKeys maps the final byte of ESC [ x. Up and down are swallowed.
var csiKeys = map[byte]key{
	'A': keyNone,
	'B': keyNone,
	'C': keyRight,
	'D': keyLeft,
}

// keyState holds the last press time of every key.
type keyState [numKeys]time.Time

// Stream delivers bytes from a reader goroutine and keeps the key state
// between frames.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

// StartStream reads r on its own goroutine until it fails.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput takes every byte available without blocking and returns the
// resulting frame input.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := s.drain()
	s.state.apply(buf, now)
	in := s.state.input(now)
	in.Pressed = buf
	return in
}

// ResetKeyInput forgets every recent press so keys held on one screen do not
// leak into the next.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

func (s *Stream) drain() []byte {
	var buf []byte
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
	return buf
}

func (st *keyState) apply(buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		if buf[i] == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if k, ok := csiKeys[buf[i+2]]; ok {
				st[k] = now
				i += 2
				continue
			}
		}
		if k, ok := byteKeys[buf[i]]; ok {
			st[k] = now
		}
	}
}

func (st *keyState) input(now time.Time) Input {
	held := func(k key) bool {
		return now.Sub(st[k]) < keyHoldDuration
	}
	return Input{
		Quit:      held(keyQuit),
		Left:      held(keyLeft),
		Right:     held(keyRight),
		Space:     held(keySpace),
		Enter:     held(keyEnter),
		Backspace: held(keyBackspace),
		Delete:    held(keyDelete),
		Escape:    held(keyEscape),
	}
}
