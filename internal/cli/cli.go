package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "door-diagrams"

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

	// packaged is true for double-clickable builds; the launcher opens
	// when such a build starts without an input file.
	packaged bool

	// launch runs the interactive launcher. Tests replace it.
	launch func(launchSettings) (launchSettings, bool, error)
}

// Option configures a CLI.
type Option func(*CLI)

// WithPackagedBuild marks the binary as a packaged desktop build.
func WithPackagedBuild(packaged bool) Option {
	return func(c *CLI) { c.packaged = packaged }
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level, opts ...Option) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
		launch: runLauncher,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself generates the diagrams.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool
	flags := generateFlags{}

	root := &cobra.Command{
		Use:   appName,
		Short: "Generate per-panel wiring diagrams from a door configuration export",
		Long: `door-diagrams reads a door hardware configuration export (CSV) and writes one
wiring diagram per panel: the panel, its subpanels in a row beneath it, and the
doors wired to each subpanel with their reader, door position, strike and REX
assignments.

Both flat tables (one row per door) and the Avigilon Door Configuration Report
(Name,Value blocks) are accepted; the layout is detected from the header.`,
		Example: `  door-diagrams --input Door_Config_Report.csv --output diagrams
  door-diagrams -i export.csv -o out --show-lines --format png,svg
  door-diagrams --gui`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := LogInfo
			if verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &flags)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	flags.register(root)

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
