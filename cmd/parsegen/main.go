package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/itsatony/go-parsely/internal"
)

func main() {
	exitCode := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run is the main entry point for the CLI, separated for testing
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	root.SetIn(stdin)

	err := root.Execute()
	if err == nil {
		return ExitCodeSuccess
	}
	return reportError(err, stderr)
}

// usageError marks errors caused by bad arguments or flags
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// reportError prints err and maps it to an exit code
func reportError(err error, stderr io.Writer) int {
	var uerr *usageError
	switch {
	case errors.As(err, &uerr):
		fmt.Fprintf(stderr, FmtErrorWithCause, CLIName, err)
		return ExitCodeUsageError
	case internal.IsDeclarationError(err):
		if loc := internal.Location(err); loc != "" {
			fmt.Fprintf(stderr, FmtErrorWithLocation, ErrMsgAnnotationError, loc, err)
		} else {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgAnnotationError, err)
		}
		return ExitCodeAnnotationError
	default:
		fmt.Fprintf(stderr, FmtErrorWithCause, CLIName, err)
		return ExitCodeError
	}
}
