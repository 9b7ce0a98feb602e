package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/variants.yaml
var defaultVariantsYAML []byte

// DefaultVariants returns the built-in variant settings.
func DefaultVariants() Variants {
	return Variants{
		NxN:         NxNSettings{Size: 4, MinSize: 4, MaxSize: 10},
		Infinite:    InfiniteSettings{WinLength: 5, ViewSpan: 15},
		Randomized:  RandomizedSettings{OpeningMoves: 3},
		ThreePlayer: ThreePlayerSettings{Size: 5, WinLength: 4},
		Obstacle:    ObstacleSettings{MinObstacles: 1, MaxObstacles: 3, MinTraps: 1, MaxTraps: 2},
		TimeControl: TimeControlSettings{
			Initial:   30 * time.Second,
			Increment: 5 * time.Second,
			Step:      10 * time.Second,
		},
		PowerUp:      PowerUpSettings{Min: 2, Max: 3},
		MoveRotation: MoveRotationSettings{MaxMoves: 3},
		OneDimensional: OneDimensionalSettings{
			Default: 1,
			Presets: []StripPreset{
				{Length: 5, WinLength: 3},
				{Length: 7, WinLength: 3},
				{Length: 9, WinLength: 3},
				{Length: 7, WinLength: 4},
				{Length: 9, WinLength: 4},
				{Length: 11, WinLength: 4},
				{Length: 13, WinLength: 5},
			},
		},
		Circular:     CircularSettings{Size: 8, MinSize: 6, MaxSize: 12, WinLength: 3},
		Dice:         DiceSettings{Rerolls: 2},
		EraseReplace: EraseReplaceSettings{UnlockAfter: 3},
	}
}

// DefaultVariantsYAML returns the embedded default settings file.
func DefaultVariantsYAML() []byte {
	return defaultVariantsYAML
}

// Normalize fills zero values from the defaults and clamps settings into
// ranges the variants can play.
func (v Variants) Normalize() Variants {
	d := DefaultVariants()

	v.NxN.MinSize = orDefault(v.NxN.MinSize, d.NxN.MinSize)
	v.NxN.MaxSize = max(orDefault(v.NxN.MaxSize, d.NxN.MaxSize), v.NxN.MinSize)
	v.NxN.Size = clamp(orDefault(v.NxN.Size, d.NxN.Size), v.NxN.MinSize, v.NxN.MaxSize)

	v.Infinite.WinLength = clamp(orDefault(v.Infinite.WinLength, d.Infinite.WinLength), 3, 10)
	v.Infinite.ViewSpan = clamp(orDefault(v.Infinite.ViewSpan, d.Infinite.ViewSpan), 5, 41)

	v.Randomized.OpeningMoves = clamp(v.Randomized.OpeningMoves, 0, 8)

	v.ThreePlayer.Size = clamp(orDefault(v.ThreePlayer.Size, d.ThreePlayer.Size), 3, 10)
	v.ThreePlayer.WinLength = clamp(orDefault(v.ThreePlayer.WinLength, d.ThreePlayer.WinLength), 3, v.ThreePlayer.Size)

	v.Obstacle.MinObstacles = clamp(v.Obstacle.MinObstacles, 0, 4)
	v.Obstacle.MaxObstacles = clamp(v.Obstacle.MaxObstacles, v.Obstacle.MinObstacles, 4)
	v.Obstacle.MinTraps = clamp(v.Obstacle.MinTraps, 0, 2)
	v.Obstacle.MaxTraps = clamp(v.Obstacle.MaxTraps, v.Obstacle.MinTraps, 2)

	if v.TimeControl.Initial <= 0 {
		v.TimeControl.Initial = d.TimeControl.Initial
	}
	if v.TimeControl.Increment < 0 {
		v.TimeControl.Increment = 0
	}
	if v.TimeControl.Step <= 0 {
		v.TimeControl.Step = d.TimeControl.Step
	}

	v.PowerUp.Min = clamp(v.PowerUp.Min, 0, 4)
	v.PowerUp.Max = clamp(v.PowerUp.Max, v.PowerUp.Min, 4)

	v.MoveRotation.MaxMoves = clamp(orDefault(v.MoveRotation.MaxMoves, d.MoveRotation.MaxMoves), 1, 5)

	if len(v.OneDimensional.Presets) == 0 {
		v.OneDimensional.Presets = d.OneDimensional.Presets
	}
	valid := v.OneDimensional.Presets[:0:0]
	for _, p := range v.OneDimensional.Presets {
		if p.Length >= 3 && p.WinLength >= 2 && p.WinLength <= p.Length {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		valid = d.OneDimensional.Presets
	}
	v.OneDimensional.Presets = valid
	v.OneDimensional.Default = clamp(v.OneDimensional.Default, 0, len(valid)-1)

	v.Circular.MinSize = orDefault(v.Circular.MinSize, d.Circular.MinSize)
	v.Circular.MaxSize = max(orDefault(v.Circular.MaxSize, d.Circular.MaxSize), v.Circular.MinSize)
	v.Circular.Size = clamp(orDefault(v.Circular.Size, d.Circular.Size), v.Circular.MinSize, v.Circular.MaxSize)
	v.Circular.WinLength = clamp(orDefault(v.Circular.WinLength, d.Circular.WinLength), 2, v.Circular.MinSize)

	v.Dice.Rerolls = clamp(v.Dice.Rerolls, 0, 9)
	v.EraseReplace.UnlockAfter = clamp(v.EraseReplace.UnlockAfter, 0, 9)

	return v
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
