package blast

import "github.com/vovakirdan/blockblast/internal/config"

// ScoreBreakdown itemizes the points for one clearing placement.
type ScoreBreakdown struct {
	Base   int
	Combo  int
	Level  int
	Streak int
	Total  int
}

// lineMultipliers scales the line base for 1 to 4 simultaneous lines.
var lineMultipliers = [...]int{0, 1, 3, 6, 10}

// BaseScore returns the points for clearing n lines at once:
// 1, 3, 6 and 10 times lineBase for 1 to 4 lines, n*n times beyond that.
func BaseScore(lineBase, n int) int {
	switch {
	case n <= 0:
		return 0
	case n < len(lineMultipliers):
		return lineBase * lineMultipliers[n]
	default:
		return lineBase * n * n
	}
}

// ScoreClear computes the points for a clear of lines at the given combo
// counter and level. streak is the number of consecutive perfect clears
// before this placement.
func ScoreClear(rules config.RulesConfig, lines, combo, level, streak int) ScoreBreakdown {
	if lines <= 0 {
		return ScoreBreakdown{}
	}
	s := ScoreBreakdown{
		Base:   BaseScore(rules.LineBase, lines),
		Combo:  combo * rules.ComboBonus,
		Streak: streak * rules.PerfectStreakBonus,
	}
	// floor(base * (level-1) * 0.1)
	s.Level = s.Base * (level - 1) / 10
	s.Total = max(s.Base+s.Combo+s.Level+s.Streak, 0)
	return s
}
