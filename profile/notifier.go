package profile

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ConsoleNotifier prints notifications to a terminal.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a notifier writing to out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Link prints a labelled link.
func (n *ConsoleNotifier) Link(label, link string) {
	fmt.Fprintf(n.out, "🔗 %s: %s\n", label, color.CyanString(link))
}

// Error prints an error message.
func (n *ConsoleNotifier) Error(message string) {
	fmt.Fprintf(n.out, "❌ %s\n", color.RedString(message))
}
