package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "persona-service",
		Short:         "CRUD service for synthetic personas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newPopulateCmd(),
		newResetCmd(),
		newVersionCmd(),
	)

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			printAppVersion(cmd)
		},
	}
}

func printAppVersion(cmd *cobra.Command) {
	tmpl := `Build version: %s
Build date: %s
Build commit: %s
`

	cmd.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
