// Command impact estimates crater size, ejected material, and global cooling
// for an asteroid impact, and charts how the cooling recovers over time.
//
// Usage:
//
//	impact                         # prompt for each parameter
//	impact --diameter 100 --velocity 20000 --density 3000 --angle 45
//	impact --view ...              # also serve the results and block until Ctrl-C
//	impact serve                   # run the HTTP API
package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/impact-sim/internal/domain"
	"github.com/couchcryptid/impact-sim/internal/presenter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run executes the command line and returns the process exit code. Validation
// errors are printed to out; anything else is logged.
func run(args []string, in io.Reader, out io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)

	if err := cmd.Execute(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			presenter.WriteError(out, verr) //nolint:errcheck // exiting anyway
		} else {
			slog.Error("impact failed", "error", err)
		}
		return 1
	}
	return 0
}
