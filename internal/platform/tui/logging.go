package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockblast/internal/storage"
)

// DefaultLogPath is where interactive sessions log, away from the alt screen.
const DefaultLogPath = "~/.blast/blast.log"

// NewLogger returns a timestamped logger writing to w.
func NewLogger(w io.Writer, prefix string, debug bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// OpenLogFile opens path for appending, creating its directory.
func OpenLogFile(path string) (*os.File, error) {
	p, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("tui: cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot open log file: %w", err)
	}
	return f, nil
}
