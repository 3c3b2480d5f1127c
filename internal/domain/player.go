package domain

import "time"

// Default player stats for a new save.
const (
	DefaultHealth    = 50
	MaxHealth        = 50
	DefaultLevel     = 1
	DefaultAttribute = 1
)

// PlayerStats is the single player's save state.
type PlayerStats struct {
	Health       int        `json:"health"`
	Experience   int        `json:"experience"`
	Level        int        `json:"level"`
	Gold         int        `json:"gold"`
	Strength     int        `json:"strength"`
	Intelligence int        `json:"intelligence"`
	Constitution int        `json:"constitution"`
	Perception   int        `json:"perception"`
	LastRollover *time.Time `json:"last_rollover,omitempty"`
}

// NewPlayer returns a fresh player with default stats.
func NewPlayer() *PlayerStats {
	return &PlayerStats{
		Health:       DefaultHealth,
		Level:        DefaultLevel,
		Strength:     DefaultAttribute,
		Intelligence: DefaultAttribute,
		Constitution: DefaultAttribute,
		Perception:   DefaultAttribute,
	}
}

// AddExperience adds amount to experience. Negative amounts remove
// experience, never below zero. Levels do not change.
func (p *PlayerStats) AddExperience(amount int) {
	p.Experience = clampMin(p.Experience+amount, 0)
}

// AddGold adds amount to gold, never below zero.
func (p *PlayerStats) AddGold(amount int) {
	p.Gold = clampMin(p.Gold+amount, 0)
}

// Damage lowers health by amount, stopping at zero.
func (p *PlayerStats) Damage(amount int) {
	p.Health = clampMin(p.Health-amount, 0)
}

// Heal raises health by amount, up to MaxHealth.
func (p *PlayerStats) Heal(amount int) {
	p.Health += amount
	if p.Health > MaxHealth {
		p.Health = MaxHealth
	}
}

func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}
