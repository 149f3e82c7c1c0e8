package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/navkit/internal/logging"
	"github.com/aretw0/navkit/internal/users"
	"github.com/aretw0/navkit/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "navkit",
	Short: "navkit is a view-model navigation controller",
	Long: `navkit keeps a bounded back stack of screens and their view-models,
opens overlays on top of the active screen and disposes what is no longer reachable.
The commands run the bundled user manager against a CSV file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file (defaults are used when empty)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format override: text or json")
	rootCmd.PersistentFlags().String("users", "users.csv", "CSV file holding the users")
}

// loadConfig reads --config and applies --log-level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		if _, err := logging.ParseFormat(format); err != nil {
			return nil, err
		}
		cfg.LogFormat = format
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewWithFormat(os.Stderr, cfg.Level(), cfg.Format())
}

func openUsers(cmd *cobra.Command) (*users.CSVRepository, error) {
	path, _ := cmd.Flags().GetString("users")
	return users.NewCSVRepository(path)
}
