package client

import (
	"time"

	"github.com/tomz197/knockoffs/internal/input"
	"github.com/tomz197/knockoffs/internal/loop/config"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Out of lives, leaderboard and restart prompt
	GameStateShutdown                  // Server is shutting down
)

func (s GameState) String() string {
	switch s {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateGameOver:
		return "game-over"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState is what one player sees and has typed.
type ClientState struct {
	Input     input.Input
	GameState GameState
	Lives     int
	Score     int // Final score once the game is over
	Running   bool

	// Initials typed on the game over screen while the score qualifies.
	Initials  []byte
	Entering  bool
	Submitted bool
	Rank      int // 1-based leaderboard rank, 0 when not ranked

	delta         time.Duration // Client frame time
	shutdownTimer float64       // Seconds left on the shutdown notice
	isInactive    bool          // Inactivity warning is showing
	game          uint64        // Server game number of the current run

	// Previous frame's state, for full redraws on transitions.
	prevGameState GameState
	wasInactive   bool
}

func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		Lives:         config.InitialLives,
		Running:       true,
		prevGameState: -1,
	}
}
