package art

import (
	"io"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// PrintLogo writes the banner to w. Colors follow fatih/color, so --no-color
// and non-terminals get plain text.
func PrintLogo(w io.Writer, version string) {
	myFigure := figure.NewFigure("gitdash", "chunky", false)
	color.New(color.FgCyan).Fprint(w, myFigure.String())
	color.New(color.FgHiRed).Fprintf(w, "              v%s\n\n", version)
}
