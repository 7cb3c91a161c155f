package cli

import (
	"fmt"
	"os"

	"taskboard/internal/config"
	"taskboard/internal/server"

	"github.com/spf13/cobra"
)

var (
	port    string
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "taskboard",
		Short: "Task board API server",
		Long: `taskboard serves a per-session kanban board with three fixed columns.

Running it without a subcommand starts the HTTP server.`,
		RunE:          runServe, // Default action is serve
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides SERVER_PORT)")
}

// Execute runs the root command
func Execute() error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createUserCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	s, err := server.Init(cfg)
	if err != nil {
		return err
	}

	s.Run()
	return nil
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if port != "" {
		cfg.ServerPort = port
	}
	return cfg
}
