package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/grimoire/internal/adapters/driving/api"
	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/logger"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP",
	Long: `Starts a read-only JSON API over the loaded catalog:

  GET /health
  GET /api/catalog/:mainType   ?q=&sub=&min=&max=&trait=&sort=&dir=&limit=&offset=
  GET /api/facets/:mainType    ?sub=
  GET /api/records/:id

The listen address defaults to serve.addr from settings.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from settings)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload the catalog when the source changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureLoaded(ctx); err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" && settingsService != nil {
		if st, err := settingsService.Get(); err == nil {
			addr = st.Serve.Addr
		}
	}
	if addr == "" {
		addr = domain.DefaultAppSettings().Serve.Addr
	}

	cmd.Printf("Serving catalog on %s\n", addr)
	return runWithWatch(ctx, serveWatch, nil, func(ctx context.Context) error {
		return api.Serve(ctx, addr, catalogService)
	})
}

// runWithWatch runs fn, reloading the catalog on source changes alongside
// it when watch is set. The watcher stops once fn returns.
func runWithWatch(
	ctx context.Context,
	watch bool,
	onReload func(*domain.LoadReport, error),
	fn func(context.Context) error,
) error {
	if !watch {
		return fn(ctx)
	}
	if watchFunc == nil {
		return fmt.Errorf("%w: source cannot be watched", domain.ErrUnsupportedType)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer logger.Debug("Watcher stopped")
		return watchFunc(gctx, onReload)
	})
	g.Go(func() error {
		defer cancel()
		return fn(gctx)
	})
	return g.Wait()
}
