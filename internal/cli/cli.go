// Package cli implements the pathlight command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pathlight/pathlight/pkg/buildinfo"
	"github.com/pathlight/pathlight/pkg/manifest"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "pathlight"

	// defaultManifest is the manifest file looked up when --manifest is unset.
	defaultManifest = "pathlight.toml"
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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pathlight",
		Short:        "Pathlight navigates declarative route trees client-side",
		Long:         `Pathlight is a navigation toolkit for Go-rendered web UIs: it matches paths against a declarative route tree, decides which anchor clicks stay in-page, and tracks location and visit history.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.routesCommand())
	root.AddCommand(c.vizCommand())
	root.AddCommand(c.auditCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.walkCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Manifest Loading
// =============================================================================

// loadApp reads and validates the manifest at path.
func loadApp(path string) (*manifest.App, error) {
	if path == "" {
		path = defaultManifest
	}
	return manifest.Load(path)
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the data directory using XDG standard (~/.local/share/pathlight/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
