package main

import (
	"os"

	"github.com/spf13/cobra"

	"tavern/internal/interfaces/cli/admin"
	"tavern/internal/interfaces/cli/migrate"
	"tavern/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tavern",
		Short: "Tavern - tabletop campaign manager",
		Long:  `Tavern is the campaign management backend: campaigns, characters, invitations and plan-based quota enforcement.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
