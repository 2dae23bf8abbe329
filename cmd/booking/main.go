package main

import (
	"os"

	"github.com/deppfellow/booking/cmd/booking/commands"
	"github.com/spf13/cobra"
)

func main() {
	serveCmd := commands.NewServeCommand()

	rootCmd := &cobra.Command{
		Use:   "booking",
		Short: "Booking API server",
		Long:  "Booking serves the services catalog, appointments, business profile and admin login of a small rental business.",
		// Running the binary without a subcommand starts the server.
		RunE:          serveCmd.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("booking: " + err.Error() + "\n")
		os.Exit(1)
	}
}
