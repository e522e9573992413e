package cli

import (
	"strings"

	"vigil/internal/debuglog"
	"vigil/internal/deck"
	"vigil/internal/tui"

	"github.com/spf13/cobra"
)

var runPresent = tui.RunPresent

func newPresentCmd(app *App) *cobra.Command {
	var sel string

	cmd := &cobra.Command{
		Use:   "present",
		Short: "Present a selection in the terminal",
		Long: strings.TrimSpace(`
Present a selection in the terminal without the setup screen.

Without --p the last committed selection is used. Unknown ids are dropped; when none is left
the presentation opens empty.
Space, Enter or a click advance (moving on to the next prayer at the end of one);
the arrow keys move within the current prayer only.
`),
		Example: strings.TrimSpace(`
vigil present --p angelus-vespers-compline
vigil present
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := loadDeck(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := strings.TrimSpace(sel)
			if s == "" {
				if s, err = lastSelection(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
				if s == "" {
					return writeErr(cmd, errEmptySelection(s))
				}
			}
			if len(deck.ParseSelection(s, d.Known)) == 0 {
				debuglog.Logf("present: selection %q names no known group", s)
			}
			if err := runPresent(tui.PresentOptions{Deck: d, Selection: s, Style: app.config().Theme}); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sel, "p", "", "Selection string (ids separated by - . , or ;)")
	return cmd
}
