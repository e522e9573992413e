package cli

import (
	"vigil/internal/store"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently committed selections (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.DefaultStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := st.RecentSelections(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			if recs == nil {
				recs = []store.SelectionRecord{}
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of selections")
	return cmd
}
