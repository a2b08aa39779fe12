package display

import (
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

type terminalInfo struct {
	width      int
	maxDisplay int
	graphWidth int
}

// getTerminalInfo sizes output for w. Anything that is not a terminal gets
// an 80 column layout.
func getTerminalInfo(w io.Writer) *terminalInfo {
	width := 80
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}
	}

	return &terminalInfo{
		width:      width,
		maxDisplay: min(width-4, 120),
		graphWidth: max(min(width-20, 50), 10),
	}
}

func truncateString(s string, maxLen int) string {
	if maxLen < 10 {
		maxLen = 10
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func getSeparator(termInfo *terminalInfo, maxWidth int) string {
	width := termInfo.maxDisplay
	if maxWidth > 0 && maxWidth < width {
		width = maxWidth
	}
	return strings.Repeat("-", width)
}

func bar(count, maxCount, width int) string {
	if maxCount <= 0 || count <= 0 {
		return ""
	}
	n := int(float64(count) / float64(maxCount) * float64(width))
	if n == 0 {
		n = 1
	}
	return strings.Repeat("#", n)
}
