// Package cli implements the paginate command-line interface.
//
// # Commands
//
// The main commands are:
//   - render: lay out a markup document and write one PNG image per page
//   - inspect: print the pages, the placed element trees or the drawing instructions
//   - version: print the version
//
// All commands support --verbose (-v) for debug-level logging, and
// --config to load the settings from a TOML file.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/benoitkugler/paginate/boxes"
	"github.com/benoitkugler/paginate/config"
	"github.com/benoitkugler/paginate/document"
	"github.com/benoitkugler/paginate/layout"
	"github.com/benoitkugler/paginate/logger"
	"github.com/benoitkugler/paginate/markup"
	"github.com/benoitkugler/paginate/text"
	"github.com/benoitkugler/paginate/version"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance logging to `w`.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: logger.New(w, "", level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "paginate",
		Short:        "Paginate lays out documents on fixed-size pages",
		Long:         `Paginate reads a markup document made of text, images, stacks and tables, distributes it on pages, splitting the content overflowing a page, and renders the pages as images.`,
		Version:      version.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(version.VersionString + "\n")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML configuration file")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// job is a parsed document, with the settings used to lay it out.
type job struct {
	cfg     config.Config
	metrics *text.FaceMetrics
	sets    []layout.PageSet
}

func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	c.Logger.Debug("loading configuration", "path", c.configPath)
	return config.Load(c.configPath)
}

// load reads the configuration and parses the document at `path`.
func (c *CLI) load(path string) (job, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return job{}, err
	}
	metrics, err := cfg.Metrics()
	if err != nil {
		return job{}, err
	}
	opts, err := cfg.MarkupOptions(filepath.Dir(path))
	if err != nil {
		return job{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return job{}, err
	}
	defer f.Close()

	c.Logger.Info("Parsing document", "path", path)
	sets, err := markup.Parse(f, opts)
	if err != nil {
		return job{}, err
	}
	return job{cfg: cfg, metrics: metrics, sets: sets}, nil
}

// layout paginates the document, logging warnings.
func (c *CLI) layout(ctx context.Context, j job) (*document.Document, error) {
	return document.Render(ctx, j.sets,
		document.WithMetrics(j.metrics),
		document.WithObserver(boxes.LogObserver{Logger: c.Logger}),
		document.WithLogger(c.Logger),
	)
}
