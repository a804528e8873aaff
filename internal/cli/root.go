// Package cli provides the propdoc command-line interface.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-propdoc/internal/ctxlog"
	"github.com/goliatone/go-propdoc/internal/logging"
	"github.com/goliatone/go-propdoc/internal/ui"
	"github.com/goliatone/go-propdoc/pkg/config"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

// Option customises the command tree, mainly for tests.
type Option func(*app)

// WithPromptDriver replaces the interactive terminal driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(a *app) {
		if driver != nil {
			a.prompts = driver
		}
	}
}

// WithWorkingDir sets the directory used to discover configuration files and
// to place the file written by init.
func WithWorkingDir(dir string) Option {
	return func(a *app) {
		if dir != "" {
			a.workDir = dir
		}
	}
}

type app struct {
	prompts PromptDriver
	workDir string

	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
}

// NewRootCommand builds the propdoc command tree.
func NewRootCommand(options ...Option) *cobra.Command {
	a := &app{
		prompts: NewSurveyDriver(),
		workDir: ".",
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "propdoc",
		Short: "Generate Markdown documentation from configuration metadata",
		Long: `propdoc - configuration property documentation

Reads a configuration-property metadata file (spring-configuration-metadata.json)
and renders a deterministic Markdown reference of every declared property.

COMMANDS
  generate    Render the document (or check it with --check)
  init        Write a propdoc.yaml configuration file

CONFIGURATION
  Settings come from built-in defaults, then a config file (--config,
  $PROPDOC_CONFIG, or propdoc.yaml/.yml/.hcl in the working directory),
  then command-line flags.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.SetColor(!a.noColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetVersionTemplate("propdoc version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (.yaml, .yml or .hcl)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(newGenerateCmd(a), newInitCmd(a))
	return root
}

// Execute runs the CLI with os.Args and reports failures on stderr. The
// returned error is non-nil when the process should exit with status 1.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	err := root.ExecuteContext(ctx)
	if err != nil {
		ui.New(root.ErrOrStderr()).Error("%v", err)
	}
	return err
}

// loadConfig resolves the configuration file and applies the persistent
// logging flags on top of it.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(config.Locate(a.configPath, a.workDir))
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	return cfg, nil
}

// contextWithLogger installs a logger writing to the command's stderr.
func contextWithLogger(cmd *cobra.Command, cfg config.Config) (context.Context, *slog.Logger, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxlog.WithLogger(ctx, logger), logger, nil
}

func stdout(cmd *cobra.Command) io.Writer {
	if out := cmd.OutOrStdout(); out != nil {
		return out
	}
	return os.Stdout
}
