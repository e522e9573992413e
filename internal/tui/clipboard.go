package tui

import (
	"strings"

	"github.com/atotto/clipboard"
)

// copyToClipboard is a variable so tests can capture the copied text.
var copyToClipboard = func(s string) error {
	return clipboard.WriteAll(strings.ReplaceAll(s, "\r\n", "\n"))
}
