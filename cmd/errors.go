package cmd

import (
	"fmt"
	"os"
)

// cliError pairs a user-facing message with the underlying error.
type cliError struct {
	msg string
	err error
}

func (e *cliError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *cliError) Unwrap() error { return e.err }

// fail returns an error that Execute reports with userMsg, or with the full
// technical error under --verbose.
func fail(userMsg string, technicalErr error) error {
	return &cliError{msg: userMsg, err: technicalErr}
}

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if isVerbose() && technicalErr != nil {
		// In verbose mode, print the detailed, underlying technical error.
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}
