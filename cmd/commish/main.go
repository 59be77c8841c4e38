package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/version"
)

// ephemeral keeps tokens in memory for the life of the process.
var ephemeral bool

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "commish",
		Short:   "Commission dashboard in your terminal",
		Version: version.Long(),
		RunE:    runTUI,
	}

	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep tokens in memory only (seeded from ACCESS_TOKEN)")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(clientsCmd())
	rootCmd.AddCommand(salesCmd())
	rootCmd.AddCommand(withdrawalsCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(statementCmd())
	rootCmd.AddCommand(adminCmd())
	addDevCommands(rootCmd)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
