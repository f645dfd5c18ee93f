package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pathlight/pathlight/pkg/history"
	"github.com/pathlight/pathlight/pkg/observability"
	"github.com/pathlight/pathlight/pkg/route"
	"github.com/pathlight/pathlight/pkg/router"
)

// serveCommand creates the serve command running the development server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		manifestPath string
		addr         string
		initial      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a development server exposing the navigation core",
		Long: `Run a development server exposing the navigation core.

Page requests render the route tree as HTML with live aria-current marking.
The /nav endpoints drive a single navigation session over JSON: POST
/nav/click applies the click decision, POST /nav/back and /nav/forward move
through session history, and GET /nav/history reads the recorded visit
trail from the configured backend.

The history backend is picked from the [history] section of the manifest
file (memory, file, redis, mongo, or null; default memory).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(manifestPath)
			if err != nil {
				return err
			}
			tree, err := app.Build()
			if err != nil {
				return err
			}
			cfg, err := loadServeConfig(manifestPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			return c.runServe(cmd.Context(), app.Name, app.Origin, tree, cfg, initial)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", defaultManifest, "route manifest file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides [serve].addr)")
	cmd.Flags().StringVar(&initial, "path", "/", "initial location")

	return cmd
}

// runServe builds the router, store, and HTTP server, then serves until ctx
// is cancelled.
func (c *CLI) runServe(ctx context.Context, name, origin string, tree *route.Tree, cfg serveConfig, initial string) error {
	ctx = withLogger(ctx, c.Logger)
	observability.SetNavigationHooks(logNavHooks{logger: c.Logger})

	store, err := newStore(ctx, cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	sessionID := history.NewSessionID()

	opts := []router.Option{router.WithRecorder(store, sessionID)}
	if origin != "" {
		opts = append(opts, router.WithOrigin(origin))
	}
	nav, err := router.New(tree, opts...)
	if err != nil {
		return err
	}
	if err := nav.Start(ctx, initial); err != nil {
		return fmt.Errorf("start at %s: %w", initial, err)
	}
	defer nav.Stop()

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           NewServer(nav, tree, store, sessionID, name, c.Logger),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	c.Logger.Info("serving", "addr", cfg.Serve.Addr, "routes", tree.Len(), "session", sessionID, "backend", backendName(cfg.History))
	printInfo("Listening on %s", StyleLink.Render("http://"+cfg.Serve.Addr))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// backendName names the configured backend for logging.
func backendName(cfg historyConfig) string {
	if cfg.Backend == "" {
		return "memory"
	}
	return cfg.Backend
}

// logNavHooks emits navigation events to the CLI logger at debug level.
type logNavHooks struct {
	logger *log.Logger
}

func (h logNavHooks) OnDecision(ctx context.Context, href, reason string, intercepted bool) {
	h.logger.Debug("decision", "href", href, "reason", reason, "intercepted", intercepted)
}

func (h logNavHooks) OnNavigate(ctx context.Context, from, to, routeID string) {
	h.logger.Debug("navigate", "from", from, "to", to, "route", routeID)
}

func (h logNavHooks) OnNavigateError(ctx context.Context, to string, err error) {
	h.logger.Warn("navigate failed", "to", to, "err", err)
}
