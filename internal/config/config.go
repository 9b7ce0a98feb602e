// Package config loads application settings (cleanenv: YAML file plus
// TICTACTOE_* environment overrides) and per-variant rule settings (YAML with
// embedded defaults).
package config

import "time"

// Variants holds the tunable rules of every variant that has any.
type Variants struct {
	NxN            NxNSettings            `yaml:"nxn"`
	Infinite       InfiniteSettings       `yaml:"infinite"`
	Randomized     RandomizedSettings     `yaml:"randomized"`
	ThreePlayer    ThreePlayerSettings    `yaml:"threeplayer"`
	Obstacle       ObstacleSettings       `yaml:"obstacle"`
	TimeControl    TimeControlSettings    `yaml:"timecontrolled"`
	PowerUp        PowerUpSettings        `yaml:"powerup"`
	MoveRotation   MoveRotationSettings   `yaml:"moverotation"`
	OneDimensional OneDimensionalSettings `yaml:"onedimensional"`
	Circular       CircularSettings       `yaml:"circular"`
	Dice           DiceSettings           `yaml:"dice"`
	EraseReplace   EraseReplaceSettings   `yaml:"erasereplace"`
}

// NxNSettings configures the square board whose run length equals its size.
type NxNSettings struct {
	Size    int `yaml:"size"`
	MinSize int `yaml:"min_size"`
	MaxSize int `yaml:"max_size"`
}

// InfiniteSettings configures the unbounded board.
type InfiniteSettings struct {
	WinLength int `yaml:"win_length"`
	ViewSpan  int `yaml:"view_span"`
}

// RandomizedSettings configures the random opening.
type RandomizedSettings struct {
	OpeningMoves int `yaml:"opening_moves"`
}

// ThreePlayerSettings configures the three-player board.
type ThreePlayerSettings struct {
	Size         int  `yaml:"size"`
	WinLength    int  `yaml:"win_length"`
	ShuffleOrder bool `yaml:"shuffle_order"`
}

// ObstacleSettings bounds how many obstacles and traps are generated.
type ObstacleSettings struct {
	MinObstacles int `yaml:"min_obstacles"`
	MaxObstacles int `yaml:"max_obstacles"`
	MinTraps     int `yaml:"min_traps"`
	MaxTraps     int `yaml:"max_traps"`
}

// TimeControlSettings configures the chess clock.
type TimeControlSettings struct {
	Initial   time.Duration `yaml:"initial"`
	Increment time.Duration `yaml:"increment"`
	Step      time.Duration `yaml:"step"` // adjustment per +/- key press
}

// PowerUpSettings bounds how many hidden power-ups are placed.
type PowerUpSettings struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// MoveRotationSettings caps how many marks each player keeps on the board.
type MoveRotationSettings struct {
	MaxMoves int `yaml:"max_moves"`
}

// OneDimensionalSettings lists the selectable strip presets.
type OneDimensionalSettings struct {
	Presets []StripPreset `yaml:"presets"`
	Default int           `yaml:"default"` // index into Presets
}

// StripPreset is a strip length and its run length.
type StripPreset struct {
	Length    int `yaml:"length"`
	WinLength int `yaml:"win_length"`
}

// CircularSettings configures the ring board.
type CircularSettings struct {
	Size      int `yaml:"size"`
	MinSize   int `yaml:"min_size"`
	MaxSize   int `yaml:"max_size"`
	WinLength int `yaml:"win_length"`
}

// DiceSettings configures rerolls.
type DiceSettings struct {
	Rerolls int `yaml:"rerolls"`
}

// EraseReplaceSettings configures when overwriting unlocks.
type EraseReplaceSettings struct {
	UnlockAfter int `yaml:"unlock_after"`
}
