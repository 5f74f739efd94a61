package config

import (
	"errors"

	"github.com/vovakirdan/blockblast/internal/core"
)

// maxGridSize keeps the board renderable in a standard terminal.
const maxGridSize = 26

// Validate checks the configuration and returns a *ConfigurationError
// describing the first problem found.
func (c BlastConfig) Validate() error {
	if c.Grid.Size <= 0 || c.Grid.Size > maxGridSize {
		return &ConfigurationError{Field: "grid.size", Message: "must be between 1 and 26"}
	}

	positive := []struct {
		field string
		value int
	}{
		{"rules.line_base", c.Rules.LineBase},
		{"rules.lines_per_level", c.Rules.LinesPerLevel},
		{"rules.max_level", c.Rules.MaxLevel},
		{"blocks.set_size", c.Blocks.SetSize},
		{"modes.timed.duration_seconds", c.Modes.Timed.DurationSeconds},
		{"modes.challenge.target_score", c.Modes.Challenge.TargetScore},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &ConfigurationError{Field: p.field, Message: "must be positive"}
		}
	}

	nonNegative := []struct {
		field string
		value int
	}{
		{"rules.combo_bonus", c.Rules.ComboBonus},
		{"rules.perfect_clear_bonus", c.Rules.PerfectClearBonus},
		{"rules.perfect_streak_bonus", c.Rules.PerfectStreakBonus},
		{"rules.all_blocks_bonus", c.Rules.AllBlocksBonus},
		{"blocks.preview_size", c.Blocks.PreviewSize},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return &ConfigurationError{Field: p.field, Message: "must not be negative"}
		}
	}

	if _, err := c.Colors(); err != nil {
		return err
	}

	if len(c.Shapes) == 0 {
		return &ConfigurationError{Field: "shapes", Message: "catalog is empty"}
	}
	for _, s := range c.Shapes {
		m, err := s.Matrix()
		if err != nil {
			var cerr *ConfigurationError
			if errors.As(err, &cerr) {
				cerr.Field = "shapes"
			}
			return err
		}
		if len(m) > c.Grid.Size || len(m[0]) > c.Grid.Size {
			return &ConfigurationError{Field: "shapes", Message: "shape " + s.Name + " does not fit the grid"}
		}
	}

	return nil
}

// Colors resolves the palette names.
func (c BlastConfig) Colors() ([]core.Color, error) {
	if len(c.Palette) == 0 {
		return nil, &ConfigurationError{Field: "palette", Message: "is empty"}
	}
	colors := make([]core.Color, 0, len(c.Palette))
	for _, name := range c.Palette {
		col, ok := core.ParseColor(name)
		if !ok || col == core.ColorDefault {
			return nil, &ConfigurationError{Field: "palette", Message: "unknown color " + name}
		}
		colors = append(colors, col)
	}
	return colors, nil
}
