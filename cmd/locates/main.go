package main

import (
	"os"

	"github.com/spf13/cobra"

	"locates/internal/interfaces/cli/migrate"
	"locates/internal/interfaces/cli/server"
	"locates/internal/interfaces/cli/sweep"
	synccmd "locates/internal/interfaces/cli/sync"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "locates",
		Short: "Locates - excavator work order tracking",
		Long:  `Locates tracks utility locate calls for excavator work orders: dashboard ingestion, call deadlines, timers and the recycle bin.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
		synccmd.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
