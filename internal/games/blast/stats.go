package blast

import "time"

// Mode selects the rules a session ends by.
type Mode string

const (
	ModeClassic   Mode = "classic"   // play until no block fits
	ModeTimed     Mode = "timed"     // countdown; reaching zero completes the game
	ModeChallenge Mode = "challenge" // reaching the target score completes the game
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeClassic, ModeTimed, ModeChallenge:
		return true
	}
	return false
}

// Statistics accumulate over all sessions played in one mode.
// Restarting a session keeps them.
type Statistics struct {
	TotalScore        int     `json:"total_score"`
	HighScore         int     `json:"highest_score"`
	Level             int     `json:"current_level"`
	LinesCleared      int     `json:"lines_cleared_total"`
	BlocksPlaced      int     `json:"blocks_placed_total"`
	GamesPlayed       int     `json:"games_played_total"`
	TimePlayedSeconds float64 `json:"time_played_seconds"`
	PerfectClears     int     `json:"perfect_clears_count"`
	MaxCombo          int     `json:"max_combo_achieved"`
	CurrentCombo      int     `json:"current_combo_count"`
}

// BlocksPerMinute is the lifetime placement rate.
func (s Statistics) BlocksPerMinute() float64 {
	if s.TimePlayedSeconds <= 0 {
		return 0
	}
	return float64(s.BlocksPlaced) / s.TimePlayedSeconds * 60
}

// AverageScore is the mean final score per finished game.
func (s Statistics) AverageScore() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.GamesPlayed)
}

// AddSession folds a finished session into the statistics. It is used to
// merge a session into statistics stored by other players of the same mode.
func (s Statistics) AddSession(sess Session) Statistics {
	s.GamesPlayed++
	s.TotalScore += sess.FinalScore
	s.HighScore = max(s.HighScore, sess.FinalScore)
	s.LinesCleared += sess.LinesCleared
	s.BlocksPlaced += sess.BlocksPlaced
	s.TimePlayedSeconds += sess.Duration.Seconds()
	s.PerfectClears += sess.PerfectClears
	s.MaxCombo = max(s.MaxCombo, sess.MaxCombo)
	return s
}

// Session records one finished game.
type Session struct {
	ID           string        `json:"session_id"`
	Mode         Mode          `json:"game_mode"`
	Start        time.Time     `json:"start_time"`
	End          time.Time     `json:"end_time"`
	FinalScore   int           `json:"final_score"`
	LinesCleared int           `json:"lines_cleared"`
	BlocksPlaced int           `json:"blocks_placed"`
	Duration     time.Duration `json:"duration"`
	Completed    bool          `json:"completed_successfully"`

	PerfectClears int `json:"perfect_clears"`
	MaxCombo      int `json:"max_combo"`
}

// Summary is a read-only snapshot of the engine for renderers and reports.
type Summary struct {
	Mode            Mode
	Status          Status
	Score           int
	HighScore       int
	Level           int
	LinesCleared    int
	LinesToNext     int
	BlocksPlaced    int
	Combo           int
	MaxCombo        int
	PerfectClears   int
	PerfectStreak   int
	LastClearScore  int
	TimeRemaining   time.Duration
	TargetScore     int
	SessionDuration time.Duration
	Statistics      Statistics
}
