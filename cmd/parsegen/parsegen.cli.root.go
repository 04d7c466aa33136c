package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/itsatony/go-parsely/internal"
)

// rootOptions holds flags shared by all subcommands
type rootOptions struct {
	configPath   string
	outputSuffix string
	jobs         int
	verbose      bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           CLIName,
		Short:         HelpRootShort,
		Long:          HelpRootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &usageError{err: fmt.Errorf("%s %q", ErrMsgUnknownCommand, args[0])}
			}
			return cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, FlagConfig, FlagConfigShort, "", HelpFlagConfig)
	flags.StringVar(&opts.outputSuffix, FlagOutputSuffix, "", HelpFlagOutputSuffix)
	flags.IntVarP(&opts.jobs, FlagJobs, FlagJobsShort, 0, HelpFlagJobs)
	flags.BoolVarP(&opts.verbose, FlagVerbose, FlagVerboseShort, false, HelpFlagVerbose)

	root.AddCommand(
		newGenerateCmd(opts, stdout, stderr),
		newCheckCmd(opts, stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}

// usageArgs wraps a cobra argument validator so that its errors map to the
// usage exit code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// newLogger builds a console logger on stderr. Verbose runs log at debug
// with the development encoder; otherwise only warnings and errors are shown.
func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	level := zapcore.WarnLevel
	if verbose {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(stderr), level)
	return zap.New(core)
}

// loadConfig resolves the generator config: the file named by --config (or
// the optional default file), then command-line overrides.
func (o *rootOptions) loadConfig(cmd *cobra.Command, logger *zap.Logger) (internal.GeneratorConfig, error) {
	path, optional := o.configPath, false
	if path == "" {
		path, optional = internal.DefaultConfigFile, true
	}
	cfg, err := internal.LoadGeneratorConfig(path, optional, logger)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", ErrMsgConfigFailed, err)
	}

	flags := cmd.Flags()
	if flags.Changed(FlagOutputSuffix) {
		cfg.OutputSuffix = o.outputSuffix
	}
	if flags.Changed(FlagJobs) {
		if o.jobs < 1 {
			return cfg, &usageError{err: errors.New(ErrMsgInvalidJobs)}
		}
		cfg.Jobs = o.jobs
	}
	if err := cfg.Validate(); err != nil {
		return cfg, &usageError{err: err}
	}
	return cfg, nil
}

// dirsOrDefault returns args, or the current directory when none are given
func dirsOrDefault(args []string) []string {
	if len(args) == 0 {
		return []string{FlagDefaultDir}
	}
	return args
}
