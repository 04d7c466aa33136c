package main

// Command names
const (
	CmdNameGenerate = "generate"
	CmdNameCheck    = "check"
	CmdNameVersion  = "version"
)

// Flag names - long form
const (
	FlagConfig       = "config"
	FlagOutputSuffix = "output-suffix"
	FlagJobs         = "jobs"
	FlagVerbose      = "verbose"
	FlagDryRun       = "dry-run"
	FlagFormat       = "format"
)

// Flag names - short form
const (
	FlagConfigShort  = "c"
	FlagJobsShort    = "j"
	FlagVerboseShort = "v"
	FlagFormatShort  = "F"
)

// Flag default values
const (
	FlagDefaultDir    = "."
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeAnnotationError = 3
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand  = "unknown command"
	ErrMsgInvalidFormat   = "invalid output format"
	ErrMsgInvalidJobs     = "jobs must be at least 1"
	ErrMsgConfigFailed    = "failed to load config"
	ErrMsgAnnotationError = "annotation error"
)

// Help text
const (
	HelpRootShort = "Derive parsely parsers from annotated Go types"
	HelpRootLong  = `parsegen scans Go packages for types marked //parsely:derive and
writes a <package>_parsely.go file with a Parser method for each of them.

Typical use is a go:generate line in the package:

    //go:generate parsegen generate`

	HelpGenerateShort = "Generate parsers for the given package directories"
	HelpGenerateUse   = "generate [dir...]"
	HelpCheckShort    = "Validate annotations without writing files"
	HelpCheckUse      = "check [dir...]"
	HelpVersionShort  = "Show version information"

	HelpFlagConfig       = "generator config file (YAML)"
	HelpFlagOutputSuffix = "suffix of the generated file name"
	HelpFlagJobs         = "packages generated concurrently"
	HelpFlagVerbose      = "log progress to stderr"
	HelpFlagDryRun       = "print generated code to stdout instead of writing it"
	HelpFlagFormat       = "output format: text, json"
)

// Output format templates
const (
	OutputWrote      = "wrote %s (%d types)"
	OutputNothing    = "%s: no derived types"
	OutputChecked    = "ok %s (%d types)"
	OutputDryRunHead = "// %s"
)

// Version output format templates
const (
	VersionTextTemplate = "parsegen version %s\nCommit: %s\nGo: %s"
	VersionUnknown      = "unknown"
	VersionDevel        = "(devel)"
)

// CLI metadata
const (
	CLIName = "parsegen"
)

// Format string constants
const (
	FmtErrorWithCause    = "%s: %v\n"
	FmtErrorWithLocation = "%s: %s: %v\n"
	FmtNewline           = "\n"
)
