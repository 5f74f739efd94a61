package config

import (
	_ "embed"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the built-in configuration. It mirrors
// defaults/blast.yaml and is used when the embedded file cannot be parsed.
func DefaultBlastConfig() BlastConfig {
	return BlastConfig{
		Grid: GridConfig{Size: 10},
		Rules: RulesConfig{
			LineBase:           100,
			ComboBonus:         50,
			PerfectClearBonus:  2000,
			PerfectStreakBonus: 500,
			AllBlocksBonus:     100,
			LinesPerLevel:      10,
			MaxLevel:           99,
		},
		Blocks: BlocksConfig{
			SetSize:     3,
			PreviewSize: 3,
		},
		Modes: ModesConfig{
			Timed:     TimedConfig{DurationSeconds: 300},
			Challenge: ChallengeConfig{TargetScore: 10000},
		},
		Palette: []string{"blue", "green", "red", "yellow", "purple", "cyan", "orange", "pink", "lime"},
		Shapes: []ShapeDef{
			{Name: "dot", Category: "basic", Rows: []string{"#"}},
			{Name: "line_h2", Category: "basic", Rows: []string{"##"}},
			{Name: "line_h3", Category: "basic", Rows: []string{"###"}},
			{Name: "line_h4", Category: "basic", Rows: []string{"####"}},
			{Name: "line_h5", Category: "basic", Rows: []string{"#####"}},
			{Name: "line_v2", Category: "basic", Rows: []string{"#", "#"}},
			{Name: "line_v3", Category: "basic", Rows: []string{"#", "#", "#"}},
			{Name: "line_v4", Category: "basic", Rows: []string{"#", "#", "#", "#"}},
			{Name: "line_v5", Category: "basic", Rows: []string{"#", "#", "#", "#", "#"}},
			{Name: "corner_tl", Category: "l", Rows: []string{"##", "#."}},
			{Name: "corner_tr", Category: "l", Rows: []string{"##", ".#"}},
			{Name: "corner_bl", Category: "l", Rows: []string{"#.", "##"}},
			{Name: "corner_br", Category: "l", Rows: []string{".#", "##"}},
			{Name: "l_top_left", Category: "l", Rows: []string{"###", "#.."}},
			{Name: "l_top_right", Category: "l", Rows: []string{"###", "..#"}},
			{Name: "l_bottom_left", Category: "l", Rows: []string{"#..", "###"}},
			{Name: "l_bottom_right", Category: "l", Rows: []string{"..#", "###"}},
			{Name: "square2", Category: "square", Rows: []string{"##", "##"}},
			{Name: "square3", Category: "square", Rows: []string{"###", "###", "###"}},
			{Name: "t_down", Category: "t", Rows: []string{"###", ".#."}},
			{Name: "t_left", Category: "t", Rows: []string{".#", "##", ".#"}},
			{Name: "t_up", Category: "t", Rows: []string{".#.", "###"}},
			{Name: "t_right", Category: "t", Rows: []string{"#.", "##", "#."}},
			{Name: "z_h", Category: "z", Rows: []string{"##.", ".##"}},
			{Name: "s_h", Category: "z", Rows: []string{".##", "##."}},
			{Name: "z_v", Category: "z", Rows: []string{"#.", "##", ".#"}},
			{Name: "s_v", Category: "z", Rows: []string{".#", "##", "#."}},
			{Name: "plus", Category: "special", Rows: []string{".#.", "###", ".#."}},
			{Name: "big_corner_bl", Category: "special", Rows: []string{"#..", "#..", "###"}},
			{Name: "big_corner_br", Category: "special", Rows: []string{"..#", "..#", "###"}},
			{Name: "big_corner_tl", Category: "special", Rows: []string{"###", "#..", "#.."}},
			{Name: "big_corner_tr", Category: "special", Rows: []string{"###", "..#", "..#"}},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlastYAML
}
