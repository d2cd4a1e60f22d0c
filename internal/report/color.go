package report

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"

	"github.com/gregallentrester/anagram/internal/config"
)

// Console color styles.
const (
	styleHeading = "yellow+bh"
	styleName    = "green+bh"
	stylePass    = "green+bh"
	styleFail    = "red+bh"
)

// ColorEnabled resolves a color mode for w. In auto mode color is used only
// when w is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// painter applies ansi styles when enabled.
type painter struct {
	enabled bool
}

func (p painter) paint(s, style string) string {
	if !p.enabled || s == "" {
		return s
	}
	return ansi.Color(s, style)
}

// verdict colors a verdict line green when ok is true and red otherwise.
func (p painter) verdict(s string, ok bool) string {
	if ok {
		return p.paint(s, stylePass)
	}
	return p.paint(s, styleFail)
}
