package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/soyeahso/workflow-agents/internal/config"
)

const (
	exitOK       = 0
	exitNotFound = 1
	exitInvalid  = 2
)

var errorPrefix = color.New(color.FgRed, color.Bold)

// ExitCode maps an error to the process exit status: 1 when an explicitly
// requested config file is missing, 2 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var nf *config.NotFoundError
	if errors.As(err, &nf) {
		return exitNotFound
	}
	return exitInvalid
}

func printError(w io.Writer, err error) {
	errorPrefix.Fprint(w, "Error:")
	fmt.Fprintf(w, " %v\n", err)
}
