package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	}
	return "", &ConfigurationError{Field: "difficulty", Message: fmt.Sprintf("unknown preset %q (want easy, normal or hard)", name)}
}

// ApplyBlastPreset returns a copy of cfg adjusted for the preset.
// Easy levels up faster and gives more time; hard does the opposite and
// drops the single-cell block from the catalog.
func ApplyBlastPreset(cfg BlastConfig, preset DifficultyPreset) BlastConfig {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.LinesPerLevel = max(1, cfg.Rules.LinesPerLevel*4/5)
		cfg.Modes.Timed.DurationSeconds = cfg.Modes.Timed.DurationSeconds * 7 / 5
		cfg.Modes.Challenge.TargetScore = cfg.Modes.Challenge.TargetScore * 3 / 4
	case DifficultyHard:
		cfg.Rules.LinesPerLevel = cfg.Rules.LinesPerLevel * 6 / 5
		cfg.Modes.Timed.DurationSeconds = max(1, cfg.Modes.Timed.DurationSeconds*3/5)
		cfg.Modes.Challenge.TargetScore = cfg.Modes.Challenge.TargetScore * 3 / 2
		cfg.Shapes = withoutShape(cfg.Shapes, "dot")
	}
	return cfg
}

func withoutShape(shapes []ShapeDef, name string) []ShapeDef {
	out := make([]ShapeDef, 0, len(shapes))
	for _, s := range shapes {
		if s.Name != name {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return shapes
	}
	return out
}
