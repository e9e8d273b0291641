package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/kutbudev/tododeck/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "todoctl",
		Short:   "Command line client for a tododeck server",
		Version: Version,
	}

	root.AddCommand(
		commands.NewListCmd(),
		commands.NewAddCmd(),
		commands.NewShowCmd(),
		commands.NewDoneCmd(),
		commands.NewUndoneCmd(),
		commands.NewRmCmd(),
		commands.NewTagCmd(),

		// Attachments
		commands.NewAttachCmd(),
		commands.NewDetachCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
