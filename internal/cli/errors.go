package cli

import (
	"errors"
	"fmt"
	"strings"
)

var errNoDeck = errors.New("no deck: pass --deck, set VIGIL_DECK, or set \"deck\" in ~/.vigil/config.json")

type emptySelectionError struct {
	input string
}

func (e emptySelectionError) Error() string {
	if strings.TrimSpace(e.input) == "" {
		return "no selection: commit one in the setup screen or pass --p"
	}
	return fmt.Sprintf("selection %q names no known group", e.input)
}

func errEmptySelection(input string) error {
	return emptySelectionError{input: input}
}
