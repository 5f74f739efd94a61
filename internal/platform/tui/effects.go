package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blockblast/internal/core"
	"github.com/vovakirdan/blockblast/internal/games/blast"
)

const (
	bannerTTL  = 1500 * time.Millisecond
	noticeTTL  = 2 * time.Second
	flashTTL   = 300 * time.Millisecond
	maxBanners = 3
	bannerRow  = 1 // between the title and the board
)

// Banner is a short line of text shown above the board until its TTL runs out.
type Banner struct {
	Text  string
	Color core.Color
	TTL   time.Duration
}

// CellMapper locates grid cells on screen.
type CellMapper interface {
	CellScreenPos(p core.Position) (x, y int)
}

// Effects turns engine events into transient visuals: banners for score,
// combos, levels and perfect clears, and a flash over cleared cells.
// It only reads events and never touches the engine.
type Effects struct {
	banners  []Banner
	flash    []core.Position
	flashTTL time.Duration
}

// NewEffects creates an empty effects layer.
func NewEffects() *Effects {
	return &Effects{}
}

// HandleEvent implements blast.Listener.
func (e *Effects) HandleEvent(ev blast.Event) {
	switch ev := ev.(type) {
	case blast.GameStartedEvent:
		e.Clear()
	case blast.LinesClearedEvent:
		e.flash = append(e.flash[:0], ev.Positions...)
		e.flashTTL = flashTTL
		e.push(fmt.Sprintf("+%d", ev.Score.Total), core.ColorBrightGreen, bannerTTL)
	case blast.ComboEvent:
		e.push(fmt.Sprintf("COMBO x%d", ev.Multiplier), core.ColorBrightMagenta, bannerTTL)
	case blast.LevelUpEvent:
		e.push(fmt.Sprintf("LEVEL %d", ev.Level), core.ColorBrightYellow, bannerTTL)
	case blast.PerfectClearEvent:
		text := "PERFECT CLEAR"
		if ev.Streak > 1 {
			text = fmt.Sprintf("PERFECT CLEAR x%d", ev.Streak)
		}
		e.push(text, core.ColorBrightCyan, bannerTTL)
	case blast.BlocksRefilledEvent:
		if ev.Bonus > 0 {
			e.push(fmt.Sprintf("+%d ALL PLACED", ev.Bonus), core.ColorLime, bannerTTL)
		}
	case blast.GameOverEvent:
		switch {
		case ev.NewHigh:
			e.push("NEW HIGH SCORE", core.ColorBrightYellow, noticeTTL)
		case ev.Completed:
			e.push("COMPLETE", core.ColorBrightGreen, noticeTTL)
		default:
			e.push("GAME OVER", core.ColorBrightRed, noticeTTL)
		}
	}
}

// Notify shows a status message such as "SAVED".
func (e *Effects) Notify(text string, c core.Color) {
	e.push(text, c, noticeTTL)
}

func (e *Effects) push(text string, c core.Color, ttl time.Duration) {
	e.banners = append(e.banners, Banner{Text: text, Color: c, TTL: ttl})
	if len(e.banners) > maxBanners {
		e.banners = e.banners[len(e.banners)-maxBanners:]
	}
}

// Update ages every effect by dt and drops the expired ones.
func (e *Effects) Update(dt time.Duration) {
	if dt <= 0 {
		return
	}
	live := e.banners[:0]
	for _, b := range e.banners {
		b.TTL -= dt
		if b.TTL > 0 {
			live = append(live, b)
		}
	}
	e.banners = live

	if e.flashTTL > 0 {
		e.flashTTL -= dt
		if e.flashTTL <= 0 {
			e.flashTTL = 0
			e.flash = e.flash[:0]
		}
	}
}

// Clear drops all effects.
func (e *Effects) Clear() {
	e.banners = e.banners[:0]
	e.flash = e.flash[:0]
	e.flashTTL = 0
}

// Banners returns the live banners, oldest first.
func (e *Effects) Banners() []Banner { return e.banners }

// Flashing returns the grid cells currently flashing.
func (e *Effects) Flashing() []core.Position { return e.flash }

// Draw renders the banners centered on the banner row and the flash
// over the cleared cells.
func (e *Effects) Draw(dst *core.Screen, cells CellMapper) {
	for _, p := range e.flash {
		x, y := cells.CellScreenPos(p)
		dst.DrawTextWithColor(x, y, "**", core.ColorBrightWhite)
	}

	if len(e.banners) == 0 {
		return
	}
	width := 2 * (len(e.banners) - 1)
	for _, b := range e.banners {
		width += len(b.Text)
	}
	x := max((dst.Width()-width)/2, 0)
	for _, b := range e.banners {
		dst.DrawTextWithColor(x, bannerRow, b.Text, b.Color)
		x += len(b.Text) + 2
	}
}
