// Package config provides YAML-based configuration for Block Blast:
// board size, scoring rules, mode settings, the block palette and the shape
// catalog. A loaded BlastConfig is treated as immutable and injected into
// the game at startup.
package config

// BlastConfig contains all configuration for the game.
type BlastConfig struct {
	Grid    GridConfig   `yaml:"grid"`
	Rules   RulesConfig  `yaml:"rules"`
	Blocks  BlocksConfig `yaml:"blocks"`
	Modes   ModesConfig  `yaml:"modes"`
	Palette []string     `yaml:"palette"`
	Shapes  []ShapeDef   `yaml:"shapes"`
}

// GridConfig defines the board.
type GridConfig struct {
	Size int `yaml:"size"`
}

// RulesConfig holds the scoring and progression constants.
type RulesConfig struct {
	LineBase           int `yaml:"line_base"`            // points for a single line; larger clears scale from it
	ComboBonus         int `yaml:"combo_bonus"`          // per combo step
	PerfectClearBonus  int `yaml:"perfect_clear_bonus"`  // grid left empty after a clear
	PerfectStreakBonus int `yaml:"perfect_streak_bonus"` // per prior consecutive perfect clear
	AllBlocksBonus     int `yaml:"all_blocks_bonus"`     // whole tray used
	LinesPerLevel      int `yaml:"lines_per_level"`
	MaxLevel           int `yaml:"max_level"`
}

// BlocksConfig defines how many blocks are offered at a time.
type BlocksConfig struct {
	SetSize     int `yaml:"set_size"`
	PreviewSize int `yaml:"preview_size"`
}

// ModesConfig holds per-mode settings.
type ModesConfig struct {
	Timed     TimedConfig     `yaml:"timed"`
	Challenge ChallengeConfig `yaml:"challenge"`
}

// TimedConfig defines the countdown for timed mode.
type TimedConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

// ChallengeConfig defines the goal for challenge mode.
type ChallengeConfig struct {
	TargetScore int `yaml:"target_score"`
}

// ShapeDef is one entry of the shape catalog. Rows use '#' for a filled
// cell and '.' for an empty one.
type ShapeDef struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Rows     []string `yaml:"rows"`
}

// Matrix converts the row strings into a 0/1 matrix.
func (s ShapeDef) Matrix() ([][]int, error) {
	if len(s.Rows) == 0 {
		return nil, configErrorf("shape %q has no rows", s.Name)
	}
	width := len(s.Rows[0])
	filled := 0
	m := make([][]int, len(s.Rows))
	for y, row := range s.Rows {
		if len(row) != width || width == 0 {
			return nil, configErrorf("shape %q is not rectangular", s.Name)
		}
		m[y] = make([]int, width)
		for x, ch := range row {
			switch ch {
			case '#':
				m[y][x] = 1
				filled++
			case '.':
			default:
				return nil, configErrorf("shape %q has invalid character %q", s.Name, ch)
			}
		}
	}
	if filled == 0 {
		return nil, configErrorf("shape %q has no filled cells", s.Name)
	}
	return m, nil
}
