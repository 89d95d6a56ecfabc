// Package cli provides the grimoire command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driving"
	"github.com/custodia-labs/grimoire/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flag values.
var (
	verbose   bool
	configDir string
	dataDir   string
	manifest  string
	githubRef string
)

// Services wired by the builder and used by commands.
var (
	catalogService  driving.CatalogService
	settingsService driving.SettingsService
	exportFunc      ExportFunc
	watchFunc       WatchFunc
)

// ExportFunc writes the loaded catalog to a snapshot database at path and
// returns the number of records written.
type ExportFunc func(ctx context.Context, path string) (int, error)

// WatchFunc reloads the catalog on source changes until ctx is cancelled.
type WatchFunc func(ctx context.Context, onReload func(*domain.LoadReport, error)) error

// Options are the global flag values handed to the service builder.
type Options struct {
	ConfigDir string
	DataDir   string
	Manifest  string
	GitHub    string
}

// Services bundles the ports the commands need.
type Services struct {
	Catalog  driving.CatalogService
	Settings driving.SettingsService

	// Export is nil when snapshots are unavailable.
	Export ExportFunc

	// Watch is nil when the source cannot signal changes.
	Watch WatchFunc
}

// Builder constructs services from the global options.
type Builder func(Options) (*Services, error)

var builder Builder = BuildServices

// annotationNoServices marks commands that run without building services.
const annotationNoServices = "grimoire/no-services"

var rootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "Browse a tabletop rules catalog",
	Long: `Grimoire loads tabletop rules data (equipment, spells, skills) from a
directory or GitHub repository and lets you filter, sort and browse it from
the terminal, an interactive UI, an HTTP API or an MCP server.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.grimoire)")
	pf.StringVar(&dataDir, "data", "", "data directory holding the manifest")
	pf.StringVar(&manifest, "manifest", "", "manifest file relative to the data root")
	pf.StringVar(&githubRef, "github", "", "read data from a GitHub repository (owner/repo[@ref])")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices installs services directly, bypassing the builder.
func SetServices(s *Services) {
	if s == nil {
		catalogService, settingsService, exportFunc, watchFunc = nil, nil, nil, nil
		return
	}
	catalogService = s.Catalog
	settingsService = s.Settings
	exportFunc = s.Export
	watchFunc = s.Watch
}

// SetBuilder replaces the service builder. A nil builder disables building.
func SetBuilder(b Builder) {
	builder = b
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if catalogService != nil || builder == nil || cmd.Annotations[annotationNoServices] != "" {
		return nil
	}
	svc, err := builder(Options{
		ConfigDir: configDir,
		DataDir:   dataDir,
		Manifest:  manifest,
		GitHub:    githubRef,
	})
	if err != nil {
		return err
	}
	SetServices(svc)
	return nil
}

// ensureLoaded loads the catalog on first use.
func ensureLoaded(ctx context.Context) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}
	if catalogService.LastReport() != nil {
		return nil
	}
	if _, err := catalogService.Load(ctx); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	return nil
}
