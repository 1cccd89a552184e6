// Command workflow-agents prints the normalized agent pane layout for the
// workflow start scripts.
//
// Usage:
//
//	workflow-agents [--defaults] [--format json|yaml] [config-path]
//
// Exit codes: 0 success, 1 an explicitly requested config file is missing,
// 2 the config cannot be parsed or fails validation.
package main

import (
	"os"

	"github.com/soyeahso/workflow-agents/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
