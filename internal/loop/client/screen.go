package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/knockoffs/internal/draw"
	"github.com/tomz197/knockoffs/internal/loop/config"
	"github.com/tomz197/knockoffs/internal/loop/server"
)

// rockVertices is the outline resolution of an obstacle.
const rockVertices = 11

var enemyColors = []draw.Color{draw.ColorGreen, draw.ColorMagenta}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	snapshot := c.server.GetSnapshot()
	c.drawWorld(snapshot)

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Draw UI overlay
	c.drawUI(snapshot)

	return c.chunkWriter.Flush()
}

// drawWorld paints the snapshot back to front: obstacles, enemies, the
// craft, shots and particles.
func (c *Client) drawWorld(snap *server.WorldSnapshot) {
	cv := c.canvas

	for _, o := range snap.Obstacles {
		radii := c.rockOutline(o.Variant)
		pts := draw.Blob(cv.BorrowPoints(len(radii)), o.X, o.Y, o.W/2, o.H/2, radii, o.Angle)
		cv.DrawPolygon(pts, false, draw.ColorGray)
	}

	for _, e := range snap.Enemies {
		color := enemyColors[e.Variant%len(enemyColors)]
		r := e.Rect
		cv.FillRect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), color)
	}

	if c.state.GameState == GameStatePlaying {
		r := snap.Craft
		x, y, w, h := float64(r.X), float64(r.Y), float64(r.W), float64(r.H)
		cv.FillRect(x, y+h*0.4, w, h*0.6, draw.ColorCyan)
		cv.FillRect(x+w*0.4, y, w*0.2, h*0.4, draw.ColorCyan)
	}

	for _, r := range snap.Projectiles {
		cv.FillRect(float64(r.X), float64(r.Y), float64(r.W), float64(r.H), draw.ColorYellow)
	}

	for _, p := range snap.Particles {
		cv.SetFloat(p.X, p.Y, draw.ColorRed)
	}
}

// rockOutline returns the cached outline of an obstacle variant.
func (c *Client) rockOutline(variant int) []float64 {
	for len(c.rocks) <= variant {
		c.rocks = append(c.rocks, draw.BlobRadii(int64(len(c.rocks)+1), rockVertices))
	}
	return c.rocks[variant]
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(snapshot *server.WorldSnapshot) {
	termWidth := c.canvas.TerminalWidth()
	centerX := termWidth / 2
	centerY := c.canvas.TerminalHeight() / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStatePlaying:
		c.drawPlayingHUD(termWidth, snapshot)
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStateGameOver:
		c.drawGameOverScreen(centerX, centerY, snapshot)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING")

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteCentered(centerX, centerY, msg)
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue")
}

// writeCentered writes lines centered on centerX starting at row and marks
// them dirty so the canvas repaints under them once they go away.
func (c *Client) writeCentered(centerX, row int, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}
	col := centerX - width/2
	for i, line := range lines {
		c.chunkWriter.WriteAt(col, row+i, line)
		c.canvas.MarkTextDirty(col, row+i, len(line))
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		" _  __ _  _  ___   ___ _  __ ___  ___ ___ ___ ",
		"| |/ /| \\| |/ _ \\ / __| |/ // _ \\| __| __/ __|",
		"| ' < | .` | (_) | (__| ' <| (_) | _|| _|\\__ \\",
		"|_|\\_\\|_|\\_|\\___/ \\___|_|\\_\\\\___/|_| |_| |___/",
	}

	titleStartY := centerY - 7
	c.writeCentered(centerX, titleStartY, titleArt...)

	subtitle := "~ Hold the line against the descending grid ~"
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, subtitle)

	// Controls section
	controlsY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, "Controls")

	controlLines := []string{
		"A / <  . . . . . Left",
		"D / >  . . . .  Right",
		"SPACE  . . . .  Shoot",
		"Q  . . . . . . . Quit",
	}
	c.writeCentered(centerX, controlsY+1, controlLines...)

	if c.board != nil {
		if high := c.board.High(); high > 0 {
			c.writeCentered(centerX, controlsY+len(controlLines)+2, fmt.Sprintf("High score: %d", high))
		}
	}

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, controlsY+len(controlLines)+4, ">>  Press SPACE to Start  <<")
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth int, snapshot *server.WorldSnapshot) {
	cw := c.chunkWriter

	scoreText := fmt.Sprintf("Score: %-8d", snapshot.Score)
	cw.WriteAt(2, 1, scoreText)
	c.canvas.MarkTextDirty(2, 1, len(scoreText))

	highText := fmt.Sprintf("High: %-8d", snapshot.High)
	col := termWidth/2 - len(highText)/2
	cw.WriteAt(col, 1, highText)
	c.canvas.MarkTextDirty(col, 1, len(highText))

	livesText := "Lives: " + strings.Repeat("^ ", max(c.state.Lives, 0)) + strings.Repeat("  ", max(config.InitialLives-c.state.Lives, 0))
	col = termWidth - len(livesText) - 1
	cw.WriteStyled(col, 1, draw.ColorBrightCyan, livesText)
	c.canvas.MarkTextDirty(col, 1, len(livesText))
}

// drawGameOverScreen draws the final score, the initials prompt and the
// leaderboard.
func (c *Client) drawGameOverScreen(centerX, centerY int, snapshot *server.WorldSnapshot) {
	titleArt := []string{
		"   ___   _   __  __ ___    _____   _____ ___  ",
		"  / __| /_\\ |  \\/  | __|  / _ \\ \\ / / __| _ \\ ",
		" | (_ |/ _ \\| |\\/| | _|  | (_) \\ V /| _||   / ",
		"  \\___/_/ \\_\\_|  |_|___|  \\___/ \\_/ |___|_|_\\ ",
	}

	row := centerY - 10
	c.writeCentered(centerX, row, titleArt...)
	row += len(titleArt) + 1

	c.writeCentered(centerX, row, fmt.Sprintf("Score: %d", c.state.Score))
	row += 2

	switch {
	case c.state.Entering:
		initials := string(c.state.Initials) + strings.Repeat("_", config.MaxInitialsLength-len(c.state.Initials))
		cw := c.chunkWriter
		cw.WriteString(draw.ColorYellowText)
		c.writeCentered(centerX, row, "New high score! Enter your initials: "+initials)
		cw.WriteString(draw.ColorReset)
		c.writeCentered(centerX, row+1, "ENTER to save")
	case c.state.Rank > 0:
		c.writeCentered(centerX, row, fmt.Sprintf("You placed #%d", c.state.Rank))
	}
	row += 3

	if c.board != nil {
		row = c.drawLeaderboard(centerX, row)
	}

	if !c.state.Entering && time.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, row+1, ">>  Press SPACE to Restart  <<")
	}
}

// drawLeaderboard lists the top scores and returns the row below it.
func (c *Client) drawLeaderboard(centerX, row int) int {
	entries := c.board.Entries()
	if len(entries) == 0 {
		return row
	}

	c.writeCentered(centerX, row, "TOP SCORES")
	row++
	for i, e := range entries {
		line := fmt.Sprintf("%2d. %-3s %8d", i+1, e.Initials, e.Score)
		if i+1 == c.state.Rank {
			c.chunkWriter.WriteString(draw.ColorBold)
			c.writeCentered(centerX, row, line)
			c.chunkWriter.WriteString(draw.ColorReset)
		} else {
			c.writeCentered(centerX, row, line)
		}
		row++
	}
	return row
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1,
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
	)
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
