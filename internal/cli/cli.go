package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stickfigures/pkg/buildinfo"
	"github.com/matzehuels/stickfigures/pkg/config"
	"github.com/matzehuels/stickfigures/pkg/entity"
	"github.com/matzehuels/stickfigures/pkg/errors"
	"github.com/matzehuels/stickfigures/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and config lookup.
	appName = "stickfigures"

	// configEnv names an alternative config file when --config is not set.
	configEnv = "STICKFIGURES_CONFIG"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stickfigures plots entities as animated stick figures",
		Long: `Stickfigures loads a small JSON data set of entities with six numeric
attributes and plots each entity as a stick figure. Clicking a figure cycles
through the attribute pairs (x1/y1, x2/y2, x3/y3); the rotate key shifts
attribute values from one entity to the previous one.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetLoadHooks(logHooks{c.Logger})
			observability.SetSessionHooks(logHooks{c.Logger})
			observability.SetHTTPHooks(logHooks{c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (TOML, env "+configEnv+")")

	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.tableCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadConfig reads the config file named by --config or the environment.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		c.Logger.Debug("Loaded config", "path", path)
	}
	return cfg, nil
}

// loadEntities loads source once, logging the outcome. Remote sources show
// a fetch indicator on status while they download. Load failures are logged
// at error level and returned unchanged.
func loadEntities(ctx context.Context, status io.Writer, source string) (entity.Collection, error) {
	logger := loggerFromContext(ctx)
	report := newLoadReport(logger, source)

	fetching := startFetchIndicator(ctx, status, source)
	coll, err := entity.Loader{Logger: logger}.Load(ctx, source)
	fetching.stop()

	if err != nil {
		if errors.IsLoadError(err) {
			report.failed(err)
		}
		return nil, err
	}
	report.loaded(len(coll))
	return coll, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
