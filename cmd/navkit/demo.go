package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/aretw0/navkit"
	"github.com/aretw0/navkit/internal/demo"
	"github.com/aretw0/navkit/internal/presentation/tui"
	"github.com/aretw0/navkit/pkg/observability"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive user manager",
	Long: `Starts the user manager in the terminal. Pages are rendered as markdown;
type help on any page to list its commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDemo(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().String("style", "", "Markdown style: dark, light, notty or ascii (detected when empty)")
	demoCmd.Flags().Bool("plain", false, "Print raw markdown")
}

func runDemo(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Navigation is logged at info; keep the terminal quiet unless asked.
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	logger := newLogger(cfg)

	repo, err := openUsers(cmd)
	if err != nil {
		return err
	}
	nav, err := demo.Build(cfg, repo, logger,
		navkit.WithLifecycleHooks(observability.LoggingHooks(logger)),
	)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	plain, _ := cmd.Flags().GetBool("plain")
	style, _ := cmd.Flags().GetString("style")

	var opts []tui.RendererOption
	switch {
	case plain || !interactive:
		opts = append(opts, tui.WithPlain())
	case style != "":
		opts = append(opts, tui.WithStyle(style))
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && interactive {
		opts = append(opts, tui.WithWidth(width))
	}

	renderer, err := tui.NewRenderer(os.Stdout, opts...)
	if err != nil {
		return err
	}
	if interactive {
		tui.PrintBanner(os.Stdout, termenv.ColorProfile(), navkit.Version)
	}

	session := demo.NewSession(nav, renderer, os.Stdout)
	defer session.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return session.Run(ctx, demo.ScreenStart, os.Stdin)
}
