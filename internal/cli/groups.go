package cli

import (
	"github.com/spf13/cobra"
)

type groupRow struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Slides int    `json:"slides" yaml:"slides"`
}

func newGroupsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the prayers in the deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, path, err := loadDeck(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([]groupRow, 0, len(d.Groups))
			for _, g := range d.Groups {
				rows = append(rows, groupRow{ID: g.ID, Title: g.Title, Slides: len(g.Slides)})
			}
			return writeOut(cmd, app, map[string]any{
				"data": rows,
				"meta": map[string]any{"deck": path, "title": d.Title},
			})
		},
	}
}
