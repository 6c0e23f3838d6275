// Package display formats operator-facing failure messages.
//
// Every stage of a run reports failure the same way: the error travels back to
// the command layer, which turns it into a Warning and writes it to stderr
// before exiting without a report.
//
//	if err != nil {
//	    display.FailureWarning(err).Display(os.Stderr)
//	    return err
//	}
//
// FailureWarning recognizes *runner.CommandFailedError (echoing the tail of
// the captured stderr) and *loader.LoadError (naming the missing or invalid
// file). Anything else becomes a generic "Run aborted" warning.
//
// All functions accept io.Writer interfaces for testability.
package display
