package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var headerColor = color.New(color.Bold, color.FgCyan)

var labelColor = color.New(color.FgWhite)

func (d *Dashboard) section(title string) {
	fmt.Fprintln(d.out)
	headerColor.Fprintln(d.out, title)
	fmt.Fprintln(d.out, getSeparator(d.term, 60))
}

func printField(w io.Writer, label string, value interface{}) {
	if s, ok := value.(string); ok && s == "" {
		return
	}
	fmt.Fprintf(w, "%s %v\n", labelColor.Sprint(label+":"), value)
}
