package cli

import (
	"net/url"
	"strings"

	"vigil/internal/deck"

	"github.com/spf13/cobra"
)

func newLinkCmd(app *App) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "link <id>...",
		Short: "Build a shareable selection string and presenter URL",
		Example: strings.TrimSpace(`
vigil link angelus vespers
vigil link angelus-vespers --base http://192.168.1.20:3340/
`),
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			d, _, err := loadDeck(app)
			if err != nil {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return d.GroupIDs(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := loadDeck(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			raw := strings.Join(args, "-")
			ids := deck.ParseSelection(raw, d.Known)
			if len(ids) == 0 {
				return writeErr(cmd, errEmptySelection(raw))
			}
			dropped := []string{}
			for _, id := range deck.ParseSelection(raw, nil) {
				if !d.Known(id) {
					dropped = append(dropped, id)
				}
			}

			b := strings.TrimSpace(base)
			if b == "" {
				b = "http://" + app.config().EffectiveWebAddr() + "/"
			}
			u, err := url.Parse(b)
			if err != nil {
				return writeErr(cmd, err)
			}
			sel := deck.JoinSelection(ids)
			q := u.Query()
			q.Set(deck.SelectionKey, sel)
			u.RawQuery = q.Encode()

			hints := []string{}
			if len(dropped) > 0 {
				hints = append(hints, "unknown ids were dropped; run `vigil groups` to list ids")
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"selection": sel,
					"url":       u.String(),
					"dropped":   dropped,
				},
				"_hints": hints,
			})
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Presenter base URL (default: http://<webAddr>/)")
	return cmd
}
