// Package client renders a session to a terminal and turns key presses into
// server input.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/knockoffs/internal/draw"
	"github.com/tomz197/knockoffs/internal/input"
	"github.com/tomz197/knockoffs/internal/loop/config"
	"github.com/tomz197/knockoffs/internal/loop/server"
	"github.com/tomz197/knockoffs/internal/score"
)

// Client draws one session to a terminal and forwards the player's keys to
// its game server.
type Client struct {
	server       server.GameServer
	board        *score.Leaderboard // nil disables the leaderboard
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Frame text, flushed once per frame
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	rocks        [][]float64 // Outline radii per obstacle variant
}

type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Leaderboard  *score.Leaderboard
	Logger       *log.Logger
}

// NewClient reads keys from r and draws to w. The canvas maps gs's play
// area onto the terminal.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	sizeOf := opts.TermSizeFunc
	if sizeOf == nil {
		sizeOf = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	area := gs.GetSnapshot().Area
	cols, rows, _ := sizeOf()
	width, height, offCol, offRow := clampTermSize(cols, rows)
	canvas := draw.NewScaledCanvas(width, height, float64(area.W), float64(area.H))
	canvas.SetOffset(offCol, offRow)

	return &Client{
		server:       gs,
		board:        opts.Leaderboard,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offCol, offRow),
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: sizeOf,
		logger:       logger,
	}
}

// Run draws frames at the client frame rate until the player quits, the
// input ends, the server shuts down or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.EnterGameScreen(c.writer)
	defer draw.LeaveGameScreen(c.writer)

	prev := time.Now()
	for c.state.Running && ctx.Err() == nil {
		now := time.Now()
		c.state.delta = now.Sub(prev)
		prev = now

		if err := c.frame(now); err != nil {
			return err
		}
		if spent := time.Since(now); spent < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - spent)
		}
	}
	return nil
}

func (c *Client) frame(now time.Time) error {
	c.processInput(now)
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStateGameOver:
		c.updateGameOverState()
	case GameStateShutdown:
		c.updateShutdownState()
	}
	return c.drawFrame()
}

// processInput reads this frame's keys. Only a playing client forwards
// them to the server.
func (c *Client) processInput(now time.Time) {
	c.state.Input = input.ReadInput(c.inputStream)
	if c.inputStream.Closed() {
		c.state.Running = false
		return
	}
	c.trackActivity(now, len(c.state.Input.Pressed) > 0)

	// Q is a letter while typing initials.
	if c.state.Input.Quit && !c.state.Entering {
		c.state.Running = false
	}
	if c.state.GameState == GameStatePlaying {
		c.server.SendInput(c.state.Input)
	}
}

// trackActivity raises the inactivity warning and later disconnects an idle
// player. Any key clears the warning.
func (c *Client) trackActivity(now time.Time, active bool) {
	if active {
		c.lastInput = now
		c.state.isInactive = false
		return
	}
	switch idle := now.Sub(c.lastInput).Seconds(); {
	case idle > config.InactivityDisconnectUser:
		c.logger.Info("disconnecting idle player", "idle", idle)
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}
}

// processServerEvents drains every pending server event.
func (c *Client) processServerEvents() {
	for {
		select {
		case event := <-c.server.Events():
			c.handleEvent(event)
		default:
			return
		}
	}
}

func (c *Client) handleEvent(event server.ClientEvent) {
	if event.Type == server.EventServerShutdown {
		c.state.GameState = GameStateShutdown
		c.state.shutdownTimer = config.ShutdownDisplaySeconds
		return
	}
	// Events from the world before the last reset belong to an old game.
	if c.state.GameState != GameStatePlaying || event.Game != c.state.game {
		return
	}

	switch event.Type {
	case server.EventCraftHit, server.EventEnemyLanded:
		c.state.Lives--
		c.logger.Debug("life lost", "cause", event.Type, "lives", c.state.Lives)
		if c.state.Lives <= 0 {
			c.gameOver()
		}
	}
}

// updateScreen follows terminal resizes. Any change of the render box
// clears the terminal so stale borders and offset pixels go away.
func (c *Client) updateScreen() {
	cols, rows, err := c.termSizeFunc()
	if err != nil {
		return
	}
	width, height, offCol, offRow := clampTermSize(cols, rows)

	moved := offCol != c.canvas.OffsetCol() || offRow != c.canvas.OffsetRow()
	if moved || width != c.canvas.TerminalWidth() || height != c.canvas.TerminalHeight() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(width, height)
	c.canvas.SetOffset(offCol, offRow)
	c.chunkWriter.SetOffset(offCol, offRow)
}

// clampTermSize caps the render box at the maximum resolution and centers
// it in the terminal.
func clampTermSize(cols, rows int) (width, height, offCol, offRow int) {
	width = min(cols, config.MaxTermWidth)
	height = min(rows, config.MaxTermHeight)
	return width, height, (cols - width) / 2, (rows - height) / 2
}

// updateStartState waits for Space or Enter on the title screen.
func (c *Client) updateStartState() {
	if c.state.Input.Space || c.state.Input.Enter {
		c.startGame()
	}
}

// startGame starts a fresh game on the server with full lives.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.state.game = c.server.Reset()

	c.state.Lives = config.InitialLives
	c.state.Score = 0
	c.state.Initials = c.state.Initials[:0]
	c.state.Entering = false
	c.state.Submitted = false
	c.state.Rank = 0
	c.state.GameState = GameStatePlaying
}

// gameOver freezes the final score and opens initials entry if the score
// makes the leaderboard.
func (c *Client) gameOver() {
	// Release any held movement.
	c.server.SendInput(input.Input{})
	input.ResetKeyInput(c.inputStream)

	c.state.Score = c.server.GetSnapshot().Score
	c.state.GameState = GameStateGameOver
	c.state.Entering = c.board != nil && c.board.Qualifies(c.state.Score)
	c.logger.Info("game over", "score", c.state.Score, "leaderboard", c.state.Entering)
}

// updateGameOverState handles initials entry and the restart prompt.
func (c *Client) updateGameOverState() {
	in := c.state.Input
	if !c.state.Entering {
		if in.Space {
			c.startGame()
		}
		return
	}

	if in.Enter {
		c.submitScore()
		return
	}
	if in.Backspace || in.Delete {
		if n := len(c.state.Initials); n > 0 {
			c.state.Initials = c.state.Initials[:n-1]
		}
		return
	}
	for _, b := range in.Pressed {
		if len(c.state.Initials) >= config.MaxInitialsLength {
			break
		}
		switch {
		case b >= 'a' && b <= 'z':
			c.state.Initials = append(c.state.Initials, b-'a'+'A')
		case b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
			c.state.Initials = append(c.state.Initials, b)
		}
	}
}

// submitScore records the final score and persists the leaderboard.
func (c *Client) submitScore() {
	c.state.Entering = false
	c.state.Submitted = true
	input.ResetKeyInput(c.inputStream)

	rank, ok := c.board.Submit(string(c.state.Initials), c.state.Score, time.Now())
	if !ok {
		return
	}
	c.state.Rank = rank
	if err := c.board.Save(); err != nil {
		c.logger.Error("save leaderboard", "path", c.board.Path(), "err", err)
	}
}

// updateShutdownState counts down the shutdown notice, then disconnects.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
