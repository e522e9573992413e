package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"vigil/internal/deck"
	"vigil/internal/format"
	"vigil/internal/model"
	"vigil/internal/store"
	"vigil/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	DeckPath   string
	PrettyJSON bool
	Format     string

	cfg *store.GlobalConfig
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "vigil",
		Short:        "Choose prayers, order them and present them line by line",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Pick and order prayers interactively, then present them
  vigil --deck ~/prayers/evening.yaml

  # Present a stored or shared selection directly
  vigil present --p vespers-compline

  # Serve the browser presenter
  vigil web --open
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive setup.
			if len(args) == 0 {
				return runSetup(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.DeckPath, "deck", envOr("VIGIL_DECK", ""), "Deck file (.yaml) or directory of .md/.txt files (default: \"deck\" in config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("VIGIL_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newPresentCmd(app))
	cmd.AddCommand(newWebCmd(app))
	cmd.AddCommand(newGroupsCmd(app))
	cmd.AddCommand(newLinkCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) config() *store.GlobalConfig {
	if app.cfg == nil {
		return &store.GlobalConfig{}
	}
	return app.cfg
}

// resolveDeckPath picks --deck / VIGIL_DECK first, then the config file.
func resolveDeckPath(app *App) (string, error) {
	if p := strings.TrimSpace(app.DeckPath); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(app.config().Deck); p != "" {
		return p, nil
	}
	return "", errNoDeck
}

func loadDeck(app *App) (*model.Deck, string, error) {
	path, err := resolveDeckPath(app)
	if err != nil {
		return nil, "", err
	}
	d, err := store.LoadDeck(path)
	if err != nil {
		return nil, path, err
	}
	return d, path, nil
}

func runSetup(cmd *cobra.Command, app *App) error {
	d, path, err := loadDeck(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	st, err := store.DefaultStore()
	if err != nil {
		return writeErr(cmd, err)
	}
	ctx := cmd.Context()
	last, _, err := st.Get(ctx, deck.SelectionKey)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not read last selection: %v\n", err)
	}

	cfg := app.config()
	opts := tui.SetupOptions{
		Deck:           d,
		DeckPath:       path,
		Selection:      last,
		KV:             st,
		History:        st,
		ItemHeight:     cfg.EffectiveItemHeight(),
		ClickThreshold: cfg.ClickThreshold(),
	}
	if w, err := store.NewDeckWatcher(path, 0); err == nil {
		opts.Watcher = w
	}

	res, err := tui.RunSetup(opts)
	if err != nil {
		return writeErr(cmd, err)
	}
	if !res.Committed {
		return nil
	}

	// The deck may have been edited while the setup screen was open.
	if fresh, err := store.LoadDeck(path); err == nil {
		d = fresh
	}
	target := res.Target
	if target == store.CommitTargetTerminal && cfg.EffectiveCommitTarget() == store.CommitTargetBrowser {
		target = store.CommitTargetBrowser
	}
	if target == store.CommitTargetBrowser {
		return serveWeb(cmd, app, webOptions{
			deck:      d,
			deckPath:  path,
			addr:      cfg.EffectiveWebAddr(),
			open:      true,
			selection: res.Selection,
		})
	}
	if err := runPresent(tui.PresentOptions{Deck: d, Selection: res.Selection, Style: cfg.Theme}); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

// lastSelection reads the stored selection, "" when none was committed yet.
func lastSelection(ctx context.Context) (string, error) {
	st, err := store.DefaultStore()
	if err != nil {
		return "", err
	}
	v, _, err := st.Get(ctx, deck.SelectionKey)
	return v, err
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
