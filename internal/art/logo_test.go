package art

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrintLogo(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	PrintLogo(&buf, "1.2.3")

	assert.Contains(t, buf.String(), "v1.2.3")
	assert.Greater(t, len(buf.String()), 40)
}
