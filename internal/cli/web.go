package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"vigil/internal/debuglog"
	"vigil/internal/deck"
	"vigil/internal/model"
	"vigil/internal/store"
	"vigil/internal/web"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var open bool
	var sel string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the browser presenter",
		Long: strings.TrimSpace(`
Serve the browser presenter from a local HTTP server.

Each page load of /?p=<selection> starts its own presentation. Without p the page
lists the deck's prayers to choose from. The deck is reloaded for new
presentations when its file changes.
`),
		Example: strings.TrimSpace(`
# Serve on the configured address and open the stored selection
vigil web --open

# Serve on every interface for a projector laptop
vigil web --addr :3340
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, path, err := loadDeck(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = app.config().EffectiveWebAddr()
			}
			s := strings.TrimSpace(sel)
			if s == "" && open {
				s, _ = lastSelection(cmd.Context())
			}
			return serveWeb(cmd, app, webOptions{
				deck:      d,
				deckPath:  path,
				addr:      listenAddr,
				open:      open,
				selection: s,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default: webAddr in config)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the presenter in your default browser")
	cmd.Flags().StringVar(&sel, "p", "", "Selection to open with --open (default: last committed)")
	return cmd
}

type webOptions struct {
	deck      *model.Deck
	deckPath  string
	addr      string
	open      bool
	selection string
}

// presenterURL is the page for selection on a server bound at addr.
func presenterURL(addr, selection string) string {
	host := addr
	if h, p, err := net.SplitHostPort(addr); err == nil && (h == "" || h == "0.0.0.0" || h == "::") {
		host = net.JoinHostPort("127.0.0.1", p)
	}
	u := "http://" + host + "/"
	if strings.TrimSpace(selection) != "" {
		u += "?" + url.Values{deck.SelectionKey: {selection}}.Encode()
	}
	return u
}

func serveWeb(cmd *cobra.Command, app *App, opts webOptions) error {
	srv, err := web.NewServer(web.ServerConfig{Addr: opts.addr, Deck: opts.deck})
	if err != nil {
		return writeErr(cmd, err)
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return writeErr(cmd, err)
	}
	actualAddr := ln.Addr().String()
	pageURL := presenterURL(actualAddr, opts.selection)

	opened := false
	openErr := ""
	if opts.open {
		if err := openPath(pageURL); err != nil {
			openErr = err.Error()
		} else {
			opened = true
		}
	}
	hints := []string{}
	if !opened {
		hints = append(hints, "open "+pageURL)
	}
	_ = writeOut(cmd, app, map[string]any{
		"data": map[string]any{
			"addr":      actualAddr,
			"url":       pageURL,
			"deck":      opts.deckPath,
			"opened":    opened,
			"openError": openErr,
			"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
		},
		"_hints": hints,
	})
	fmt.Fprintf(cmd.ErrOrStderr(), "vigil web running at %s\n", pageURL)
	if openErr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Event streams end with the server's context.
		BaseContext: func(net.Listener) context.Context { return gctx },
	}
	g.Go(func() error {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if w, err := store.NewDeckWatcher(opts.deckPath, 0); err == nil {
		if err := w.Start(); err == nil {
			defer w.Stop()
			g.Go(func() error {
				return reloadOnChange(gctx, w, srv)
			})
		}
	}

	if err := g.Wait(); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

// reloadOnChange hands freshly loaded decks to srv until ctx ends. Invalid edits keep the
// previous deck.
func reloadOnChange(ctx context.Context, w *store.DeckWatcher, srv *web.Server) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			debuglog.Logf("web: watch error: %v", err)
		case <-w.Changed():
			d, err := store.LoadDeck(w.Path())
			if err != nil {
				debuglog.Logf("web: reload %s: %v", w.Path(), err)
				continue
			}
			srv.SetDeck(d)
			debuglog.Logf("web: reloaded %s (%d groups)", w.Path(), len(d.Groups))
		}
	}
}
