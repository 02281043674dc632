package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxEntries is the number of scores the ledger keeps.
	MaxEntries = 10
	// DefaultInitials is recorded when the player gave none.
	DefaultInitials = "---"
	// DefaultPath is used when KNOCKOFFS_SCORES is not set.
	DefaultPath = "savedata/high_scores.json"
)

// Entry is one ledger line.
type Entry struct {
	ID       uuid.UUID `json:"id"`
	Initials string    `json:"initials"`
	Score    int       `json:"score"`
	At       time.Time `json:"at"`
}

// Leaderboard is the persistent top-ten list. It is safe for concurrent use
// by several sessions.
type Leaderboard struct {
	mu      sync.Mutex
	saveMu  sync.Mutex // Serializes Save so the newest copy lands last
	path    string
	entries []Entry
}

// LoadLeaderboard reads the ledger at path. A missing file yields an empty
// ledger that will be created on the first Save.
func LoadLeaderboard(path string) (*Leaderboard, error) {
	l := &Leaderboard{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if len(data) == 0 {
		return l, nil
	}

	if err := json.Unmarshal(data, &l.entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard %s: %w", path, err)
	}
	l.normalize()
	return l, nil
}

// Path returns the file the ledger is saved to.
func (l *Leaderboard) Path() string {
	return l.path
}

// Entries returns a copy of the ledger, best score first.
func (l *Leaderboard) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// High returns the best recorded score, or 0.
func (l *Leaderboard) High() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return 0
	}
	return l.entries[0].Score
}

// Qualifies reports whether score would enter the ledger.
func (l *Leaderboard) Qualifies(score int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.qualifies(score)
}

func (l *Leaderboard) qualifies(score int) bool {
	if score <= 0 {
		return false
	}
	return len(l.entries) < MaxEntries || score > l.entries[len(l.entries)-1].Score
}

// Submit records a score if it qualifies and returns its 1-based rank.
// Equal scores rank behind those already recorded.
func (l *Leaderboard) Submit(initials string, score int, at time.Time) (rank int, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.qualifies(score) {
		return 0, false
	}
	if initials == "" {
		initials = DefaultInitials
	}

	idx, _ := slices.BinarySearchFunc(l.entries, score, func(e Entry, s int) int {
		// Descending; treat equal as "before" so new entries go after ties.
		if e.Score >= s {
			return -1
		}
		return 1
	})
	l.entries = slices.Insert(l.entries, idx, Entry{
		ID:       uuid.New(),
		Initials: initials,
		Score:    score,
		At:       at.UTC(),
	})
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	return idx + 1, true
}

// Save writes the ledger, creating the parent directory when needed. The
// file is replaced atomically.
func (l *Leaderboard) Save() error {
	l.saveMu.Lock()
	defer l.saveMu.Unlock()

	l.mu.Lock()
	data, err := json.MarshalIndent(l.entries, "", "    ")
	l.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create leaderboard dir: %w", err)
	}

	f, err := os.CreateTemp(dir, ".scores-*")
	if err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write leaderboard: %w", err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return fmt.Errorf("write leaderboard: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	if err := os.Rename(f.Name(), l.path); err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	return nil
}

// normalize sorts loaded entries, drops non-positive scores and trims the
// list to MaxEntries.
func (l *Leaderboard) normalize() {
	l.entries = slices.DeleteFunc(l.entries, func(e Entry) bool { return e.Score <= 0 })
	slices.SortStableFunc(l.entries, func(a, b Entry) int { return b.Score - a.Score })
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}
	for i := range l.entries {
		if l.entries[i].ID == uuid.Nil {
			l.entries[i].ID = uuid.New()
		}
		if l.entries[i].Initials == "" {
			l.entries[i].Initials = DefaultInitials
		}
	}
}
