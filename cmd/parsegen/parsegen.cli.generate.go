package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/itsatony/go-parsely/internal"
)

// generateOptions holds flags of the generate command
type generateOptions struct {
	*rootOptions
	dryRun bool
}

func newGenerateCmd(root *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	opts := &generateOptions{rootOptions: root}
	cmd := &cobra.Command{
		Use:   HelpGenerateUse,
		Short: HelpGenerateShort,
		Args:  usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, dirsOrDefault(args), stdout, stderr)
		},
	}
	cmd.Flags().BoolVar(&opts.dryRun, FlagDryRun, false, HelpFlagDryRun)
	return cmd
}

func newCheckCmd(root *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   HelpCheckUse,
		Short: HelpCheckShort,
		Args:  usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, dirsOrDefault(args), stdout, stderr)
		},
	}
}

func runGenerate(cmd *cobra.Command, opts *generateOptions, dirs []string, stdout, stderr io.Writer) error {
	logger := newLogger(opts.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	cfg, err := opts.loadConfig(cmd, logger)
	if err != nil {
		return err
	}
	gen := internal.NewGenerator(cfg, logger)
	results, err := gen.GenerateAll(cmd.Context(), dirs, !opts.dryRun)
	if err != nil {
		return err
	}

	for _, res := range results {
		switch {
		case res.Output == "":
			fmt.Fprintf(stdout, OutputNothing+FmtNewline, res.Dir)
		case opts.dryRun:
			fmt.Fprintf(stdout, OutputDryRunHead+FmtNewline, res.Output)
			if _, err := stdout.Write(res.Source); err != nil {
				return err
			}
		default:
			fmt.Fprintf(stdout, OutputWrote+FmtNewline, res.Output, res.Types)
		}
	}
	return nil
}

func runCheck(cmd *cobra.Command, opts *rootOptions, dirs []string, stdout, stderr io.Writer) error {
	logger := newLogger(opts.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	cfg, err := opts.loadConfig(cmd, logger)
	if err != nil {
		return err
	}
	results, err := internal.NewGenerator(cfg, logger).GenerateAll(cmd.Context(), dirs, false)
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Fprintf(stdout, OutputChecked+FmtNewline, res.Dir, res.Types)
	}
	return nil
}
