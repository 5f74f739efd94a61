package config

// LevelFor returns the level reached after clearing the given number of
// lines: one level per LinesPerLevel lines, starting at 1 and capped at MaxLevel.
func (r RulesConfig) LevelFor(linesCleared int) int {
	if r.LinesPerLevel <= 0 || linesCleared < 0 {
		return 1
	}
	return min(r.MaxLevel, 1+linesCleared/r.LinesPerLevel)
}

// LinesToNextLevel returns how many more lines are needed to level up,
// or 0 at the level cap.
func (r RulesConfig) LinesToNextLevel(linesCleared int) int {
	if r.LinesPerLevel <= 0 || r.LevelFor(linesCleared) >= r.MaxLevel {
		return 0
	}
	return r.LinesPerLevel - linesCleared%r.LinesPerLevel
}
