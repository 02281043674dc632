package config

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/BurntSushi/toml"
)

// Validation errors. Settings.Validate wraps these with details.
var (
	ErrInvalidArea      = errors.New("invalid play area")
	ErrInvalidCraft     = errors.New("invalid craft settings")
	ErrInvalidFormation = errors.New("invalid formation settings")
	ErrInvalidObstacles = errors.New("invalid obstacle settings")
)

// Default play area in logical pixels. Renderers scale it to the terminal.
const (
	DefaultAreaWidth  = 800
	DefaultAreaHeight = 600
)

// Size is the native width and height of a sprite. Only the aspect ratio
// matters; entities are scaled relative to the play area height.
type Size struct {
	W float64 `toml:"w"`
	H float64 `toml:"h"`
}

// Area is the play area in logical pixels, anchored at the origin.
type Area struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Craft configures the player's ship.
type Craft struct {
	Scale  float64 `toml:"scale"`  // Fraction of the area height
	Speed  float64 `toml:"speed"`  // Pixels per second
	Sprite Size    `toml:"sprite"` // Native sprite size
}

// Projectile configures the craft's shots.
type Projectile struct {
	Speed   float64 `toml:"speed"`   // Pixels per second, upward
	Width   float64 `toml:"width"`   // Pixels
	Height  float64 `toml:"height"`  // Pixels
	Max     int     `toml:"max"`     // Live shots allowed at once
	Persist bool    `toml:"persist"` // Shots keep flying after a hit
}

// Formation configures the enemy grid.
type Formation struct {
	Columns        int     `toml:"columns"`
	Rows           int     `toml:"rows"`
	HeightRatio    float64 `toml:"height_ratio"`     // Share of the area height the grid spans
	DropHeight     float64 `toml:"drop_height"`      // Pixels descended per wall contact
	HoldEmptyFrame bool    `toml:"hold_empty_frame"` // Show one empty tick before rebuilding
}

// Enemy configures a single formation member.
type Enemy struct {
	Scale   float64 `toml:"scale"`
	Speed   float64 `toml:"speed"` // Starting horizontal speed, pixels per second
	Points  int     `toml:"points"`
	Sprites []Size  `toml:"sprites"`
}

// Obstacles configures the ambient drifting field.
type Obstacles struct {
	Count         int     `toml:"count"`
	Scale         float64 `toml:"scale"`
	ScaleMin      float64 `toml:"scale_min"` // Recycle scale multiplier range
	ScaleMax      float64 `toml:"scale_max"`
	Speed         float64 `toml:"speed"`          // Base speed per axis, pixels per second
	RotationSpeed float64 `toml:"rotation_speed"` // Base spin, degrees per second
	AnchorLead    float64 `toml:"anchor_lead"`    // Seconds of travel between anchor and the area edge
	Sprites       []Size  `toml:"sprites"`
}

// Settings is the immutable configuration handed to every component at
// construction. Components keep the pointer and never modify it.
type Settings struct {
	Area       Area       `toml:"area"`
	Craft      Craft      `toml:"craft"`
	Projectile Projectile `toml:"projectile"`
	Formation  Formation  `toml:"formation"`
	Enemy      Enemy      `toml:"enemy"`
	Obstacles  Obstacles  `toml:"obstacles"`
	MaxDelta   float64    `toml:"max_delta"` // Upper bound for a tick, seconds
	Seed       int64      `toml:"seed"`      // 0 picks a time-based seed
}

// Default returns settings derived from the play area size.
func Default(width, height int) *Settings {
	w := float64(width)
	h := float64(height)

	return &Settings{
		Area: Area{Width: width, Height: height},
		Craft: Craft{
			Scale:  0.11,
			Speed:  0.45 * w,
			Sprite: Size{W: 100, H: 80},
		},
		Projectile: Projectile{
			Speed:   0.80 * h,
			Width:   0.01 * w,
			Height:  0.028 * h,
			Max:     3,
			Persist: true,
		},
		Formation: Formation{
			Columns:     8,
			Rows:        8,
			HeightRatio: 0.55,
			DropHeight:  0.05 * h,
		},
		Enemy: Enemy{
			Scale:   0.06,
			Speed:   0.21 * w,
			Points:  10,
			Sprites: []Size{{W: 40, H: 32}, {W: 44, H: 32}},
		},
		Obstacles: Obstacles{
			Count:         3,
			Scale:         0.14,
			ScaleMin:      0.75,
			ScaleMax:      1.5,
			Speed:         0.08 * w,
			RotationSpeed: 45,
			AnchorLead:    0.5,
			Sprites:       []Size{{W: 64, H: 64}, {W: 80, H: 64}, {W: 56, H: 72}},
		},
		MaxDelta: 0.1,
	}
}

// Load reads a TOML file on top of the defaults. The [area] table is read
// first so that derived defaults follow the configured area size.
func Load(path string) (*Settings, error) {
	var head struct {
		Area Area `toml:"area"`
	}
	if _, err := toml.DecodeFile(path, &head); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	width, height := head.Area.Width, head.Area.Height
	if width == 0 {
		width = DefaultAreaWidth
	}
	if height == 0 {
		height = DefaultAreaHeight
	}

	s := Default(width, height)
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("read config %s: unknown keys %v", path, undecoded)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromEnv builds settings from KNOCKOFFS_CONFIG (optional TOML file) and
// applies KNOCKOFFS_SEED and KNOCKOFFS_BULLETS_PERSIST overrides.
func FromEnv() (*Settings, error) {
	var s *Settings
	if path := GetEnv("KNOCKOFFS_CONFIG", ""); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		s = loaded
	} else {
		s = Default(DefaultAreaWidth, DefaultAreaHeight)
	}

	s.Seed = GetEnvInt("KNOCKOFFS_SEED", s.Seed)
	s.Projectile.Persist = GetEnvBool("KNOCKOFFS_BULLETS_PERSIST", s.Projectile.Persist)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewRand returns the random source for a simulation. A zero seed picks a
// time-based one.
func (s *Settings) NewRand() *rand.Rand {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Validate checks every section and returns all problems joined together.
func (s *Settings) Validate() error {
	var errs []error

	if s.Area.Width <= 0 || s.Area.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: size %dx%d", ErrInvalidArea, s.Area.Width, s.Area.Height))
	}
	if s.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_delta must be positive, got %v", ErrInvalidArea, s.MaxDelta))
	}

	if s.Craft.Speed <= 0 {
		errs = append(errs, fmt.Errorf("%w: speed must be positive, got %v", ErrInvalidCraft, s.Craft.Speed))
	}
	if s.Craft.Scale <= 0 || !validSize(s.Craft.Sprite) {
		errs = append(errs, fmt.Errorf("%w: sprite size must be positive", ErrInvalidCraft))
	}
	if s.Projectile.Speed <= 0 {
		errs = append(errs, fmt.Errorf("%w: projectile speed must be positive, got %v", ErrInvalidCraft, s.Projectile.Speed))
	}
	if s.Projectile.Max < 0 {
		errs = append(errs, fmt.Errorf("%w: projectile max must not be negative, got %d", ErrInvalidCraft, s.Projectile.Max))
	}
	if s.Projectile.Width <= 0 || s.Projectile.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: projectile size must be positive", ErrInvalidCraft))
	}

	errs = append(errs, s.validateFormation()...)
	errs = append(errs, s.validateObstacles()...)

	return errors.Join(errs...)
}

func (s *Settings) validateFormation() []error {
	var errs []error
	f := s.Formation
	if f.Columns <= 0 {
		errs = append(errs, fmt.Errorf("%w: columns must be positive, got %d", ErrInvalidFormation, f.Columns))
	}
	if f.Rows <= 0 {
		errs = append(errs, fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidFormation, f.Rows))
	}
	if f.HeightRatio <= 0 {
		errs = append(errs, fmt.Errorf("%w: height_ratio must be positive, got %v", ErrInvalidFormation, f.HeightRatio))
	}
	if f.DropHeight <= 0 {
		errs = append(errs, fmt.Errorf("%w: drop_height must be positive, got %v", ErrInvalidFormation, f.DropHeight))
	}
	if s.Enemy.Speed <= 0 {
		errs = append(errs, fmt.Errorf("%w: enemy speed must be positive, got %v", ErrInvalidFormation, s.Enemy.Speed))
	}
	if s.Enemy.Scale <= 0 || !validSprites(s.Enemy.Sprites) {
		errs = append(errs, fmt.Errorf("%w: enemy sprites must be non-empty with positive sizes", ErrInvalidFormation))
	}
	return errs
}

func (s *Settings) validateObstacles() []error {
	o := s.Obstacles
	if o.Count < 0 {
		return []error{fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidObstacles, o.Count)}
	}
	if o.Count == 0 {
		return nil
	}

	var errs []error
	if o.Speed <= 0 {
		errs = append(errs, fmt.Errorf("%w: speed must be positive, got %v", ErrInvalidObstacles, o.Speed))
	}
	if o.Scale <= 0 || o.ScaleMin <= 0 || o.ScaleMax < o.ScaleMin {
		errs = append(errs, fmt.Errorf("%w: scale range [%v, %v] x %v", ErrInvalidObstacles, o.ScaleMin, o.ScaleMax, o.Scale))
	}
	if o.AnchorLead < 0 {
		errs = append(errs, fmt.Errorf("%w: anchor_lead must not be negative, got %v", ErrInvalidObstacles, o.AnchorLead))
	}
	if !validSprites(o.Sprites) {
		errs = append(errs, fmt.Errorf("%w: sprites must be non-empty with positive sizes", ErrInvalidObstacles))
	}
	return errs
}

func validSize(s Size) bool {
	return s.W > 0 && s.H > 0
}

func validSprites(sprites []Size) bool {
	if len(sprites) == 0 {
		return false
	}
	for _, s := range sprites {
		if !validSize(s) {
			return false
		}
	}
	return true
}
