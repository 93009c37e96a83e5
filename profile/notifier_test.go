package profile

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestConsoleNotifier(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf)

	n.Link("View transaction", "https://explorer.solana.com/tx/abc")
	n.Error("Error: boom")

	assert.Equal(t, "🔗 View transaction: https://explorer.solana.com/tx/abc\n❌ Error: boom\n", buf.String())
}
