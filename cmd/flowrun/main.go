// Command flowrun is a reference CLI for exercising a flow definition: it
// validates a flow file and drives an interactive session against it from
// the terminal. It is a development aid, not a production deployment
// surface (see flow/config for the environment knobs it reads).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flowrun",
		Short:         "Validate and run flow definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd())
	root.AddCommand(newRunCmd())
	return root
}
