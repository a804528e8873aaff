package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-propdoc/internal/ui"
	"github.com/goliatone/go-propdoc/pkg/config"
	"github.com/goliatone/go-propdoc/pkg/output"
)

const defaultConfigFile = "propdoc.yaml"

func newInitCmd(a *app) *cobra.Command {
	var (
		yes   bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a propdoc.yaml configuration file",
		Long: `Interactively create a configuration file. The file defaults to
propdoc.yaml in the working directory.

Use --yes to skip the prompts and write the defaults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := filepath.Join(a.workDir, defaultConfigFile)
			if len(args) > 0 {
				target = args[0]
				if !filepath.IsAbs(target) {
					target = filepath.Join(a.workDir, target)
				}
			}
			return a.runInit(cmd, target, yes, force)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "accept defaults without prompting")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, target string, yes, force bool) error {
	ctx := cmd.Context()
	printer := ui.New(stdout(cmd))

	if ext := strings.ToLower(filepath.Ext(target)); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("init writes YAML; %s must end in .yaml or .yml", target)
	}

	if _, err := os.Stat(target); err == nil && !force {
		if yes {
			return fmt.Errorf("%s already exists (use --force to overwrite)", target)
		}
		overwrite, err := a.prompts.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("%s already exists. Overwrite?", target),
		})
		if err != nil {
			return err
		}
		if !overwrite {
			printer.Info("Aborted.")
			return nil
		}
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	cfg := config.Default()
	if !yes {
		var err error
		if cfg, err = a.promptConfig(cmd, cfg); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if _, err := output.NewWriter().Write(ctx, target, string(data)); err != nil {
		return err
	}

	printer.Success("Wrote %s", target)
	return nil
}

func (a *app) promptConfig(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	ctx := cmd.Context()
	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("a value is required")
		}
		return nil
	}

	var err error
	if cfg.JSONFileName, err = a.prompts.Input(ctx, InputConfig{
		Message:   "Metadata file",
		Default:   cfg.JSONFileName,
		Help:      "Path to spring-configuration-metadata.json, relative to this config file",
		Validator: required,
	}); err != nil {
		return cfg, err
	}
	if cfg.OutputFileName, err = a.prompts.Input(ctx, InputConfig{
		Message:   "Output document",
		Default:   cfg.OutputFileName,
		Validator: required,
	}); err != nil {
		return cfg, err
	}
	if cfg.Engine, err = a.prompts.Select(ctx, SelectConfig{
		Message: "Template engine",
		Options: config.Engines(),
		Default: cfg.Engine,
	}); err != nil {
		return cfg, err
	}
	if cfg.FailIfNoMetadataFileFound, err = a.prompts.Confirm(ctx, ConfirmConfig{
		Message: "Fail when the metadata file is missing?",
		Default: cfg.FailIfNoMetadataFileFound,
	}); err != nil {
		return cfg, err
	}
	if cfg.SanitizeDescriptions, err = a.prompts.Confirm(ctx, ConfirmConfig{
		Message: "Strip unsafe HTML from descriptions?",
		Default: cfg.SanitizeDescriptions,
	}); err != nil {
		return cfg, err
	}
	return cfg, nil
}
