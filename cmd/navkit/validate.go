package main

import (
	"fmt"
	"os"

	"github.com/aretw0/navkit/internal/demo"
	"github.com/aretw0/navkit/pkg/config"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a configuration file",
	Long: `Parses the configuration, builds its registration table and reports
routes whose view-model kind has no factory.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := runValidate(cmd, args)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration is valid ✅ (%d routes)\n", len(cfg.Routes))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) (*config.Config, error) {
	if len(args) > 0 {
		if err := cmd.Flags().Set("config", args[0]); err != nil {
			return nil, err
		}
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if _, err := cfg.Table(); err != nil {
		return nil, err
	}

	if missing := demo.Unbound(cfg, demo.NewContainer(nil, nil, nil)); len(missing) > 0 {
		return nil, fmt.Errorf("%w: no view-model bound for %v", config.ErrInvalid, missing)
	}
	return cfg, nil
}
