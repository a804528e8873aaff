package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-propdoc"
	"github.com/goliatone/go-propdoc/internal/ui"
	perrors "github.com/goliatone/go-propdoc/pkg/errors"
	"github.com/goliatone/go-propdoc/pkg/orchestrator"
)

type generateFlags struct {
	metadata      string
	output        string
	failIfMissing bool
	template      string
	templateDir   string
	engine        string
	sanitize      bool
	check         bool
	dryRun        bool
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Render the configuration document",
		Long: `Render the configuration metadata into a Markdown document.

A missing metadata file is skipped unless --fail-if-missing is set. With
--check nothing is written; the command fails and prints a diff when the
document on disk is out of date. With --dry-run the document is printed to
stdout instead of being written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.metadata, "metadata", "m", "", "metadata JSON file")
	flags.StringVarP(&f.output, "output", "o", "", "generated Markdown file")
	flags.BoolVar(&f.failIfMissing, "fail-if-missing", false, "fail when the metadata file does not exist")
	flags.StringVar(&f.template, "template", "", "logical template name (engine extension is added)")
	flags.StringVar(&f.templateDir, "template-dir", "", "directory with templates overriding the built-in ones")
	flags.StringVar(&f.engine, "engine", "", "template engine: pongo2 or gotemplate")
	flags.BoolVar(&f.sanitize, "sanitize", false, "strip unsafe HTML from descriptions")
	flags.BoolVar(&f.check, "check", false, "verify the document is up to date without writing")
	flags.BoolVarP(&f.dryRun, "dry-run", "n", false, "print the document instead of writing it")
	cmd.MarkFlagsMutuallyExclusive("check", "dry-run")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, f generateFlags) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("metadata") {
		cfg.JSONFileName = f.metadata
	}
	if flags.Changed("output") {
		cfg.OutputFileName = f.output
	}
	if flags.Changed("fail-if-missing") {
		cfg.FailIfNoMetadataFileFound = f.failIfMissing
	}
	if flags.Changed("template") {
		cfg.Template = f.template
	}
	if flags.Changed("template-dir") {
		cfg.TemplateDir = f.templateDir
	}
	if flags.Changed("engine") {
		cfg.Engine = f.engine
	}
	if flags.Changed("sanitize") {
		cfg.SanitizeDescriptions = f.sanitize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, logger, err := contextWithLogger(cmd, cfg)
	if err != nil {
		return err
	}

	req := propdoc.NewRequest(cfg)
	req.Check = f.check
	req.DryRun = f.dryRun

	gen := propdoc.NewOrchestrator(append(propdoc.Options(cfg), orchestrator.WithLogger(logger))...)
	result, err := gen.Generate(ctx, req)

	out := stdout(cmd)
	printer := ui.New(out)
	if err != nil {
		if errors.Is(err, perrors.ErrOutputStale) {
			fmt.Fprint(out, perrors.DetailOf(err))
			return fmt.Errorf("%s is out of date; run propdoc generate to update it", cfg.OutputFileName)
		}
		return err
	}

	switch result.Status {
	case orchestrator.StatusRendered:
		fmt.Fprint(out, result.Document)
	case orchestrator.StatusSkipped:
		printer.Warning("Metadata file %s not found, nothing generated", result.Source)
	case orchestrator.StatusUpToDate:
		printer.Success("%s is up to date", result.OutputFile)
	case orchestrator.StatusWritten:
		if result.Changed {
			printer.Success("Wrote %s (%d properties)", result.OutputFile, result.Properties)
		} else {
			printer.Success("Wrote %s (%d properties, unchanged)", result.OutputFile, result.Properties)
		}
	}
	return nil
}
