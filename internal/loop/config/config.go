// Package config centralizes the tunables of the terminal front end and
// the session loop. Simulation settings live in internal/config.
package config

import "time"

// Render resolution caps. Larger terminals get a centered, bordered area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Player
const (
	InitialLives      = 3
	MaxInitialsLength = 3
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)

// Effects
const (
	ExplosionParticles = 14
	ExplosionSpeed     = 120.0 // Logical pixels per second
	ExplosionLifetime  = 0.6   // Seconds
	CraftHitParticles  = 30
)

// Events buffered per session before the server starts dropping them.
const EventBuffer = 64
