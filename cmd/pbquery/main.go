// Command pbquery resolves, compiles, and evaluates pbquery queries
// against protobuf wire-format records from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pbquery",
		Short:         "Query protobuf wire-format records without a full decode",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to a pbquery.yaml config file (see -h on subcommands)")
	root.PersistentFlags().Bool("verbose", false, "enable debug-level logging")

	root.AddCommand(newResolveCommand())
	root.AddCommand(newCompileCommand())
	root.AddCommand(newEvalCommand())
	return root
}
