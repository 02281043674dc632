// Package score tracks the running score of a session and the persistent
// top-ten ledger shared by all sessions.
package score

// Scoreboard holds the current score and the best score seen by a session.
// It is owned by the simulation goroutine.
type Scoreboard struct {
	score int
	high  int
}

// NewScoreboard creates a scoreboard whose high score starts at high.
func NewScoreboard(high int) *Scoreboard {
	return &Scoreboard{high: max(high, 0)}
}

// AddScore credits points to the current score.
func (s *Scoreboard) AddScore(points int) {
	s.score += points
	if s.score > s.high {
		s.high = s.score
	}
}

// Score returns the current score.
func (s *Scoreboard) Score() int {
	return s.score
}

// High returns the best score seen so far.
func (s *Scoreboard) High() int {
	return s.high
}

// Reset zeroes the current score and keeps the high score.
func (s *Scoreboard) Reset() {
	s.score = 0
}
