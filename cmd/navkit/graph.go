package main

import (
	"fmt"
	"os"

	"github.com/aretw0/navkit/internal/demo"
	"github.com/aretw0/navkit/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the route table as a Mermaid diagram",
	Long:  `Reads the configured routes and prints a Mermaid diagram (graph TD) of every screen and the view-model kind it resolves to.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		table, err := cfg.Table()
		if err != nil {
			fmt.Printf("Error building routes: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(graph.GenerateMermaid(graph.RoutesFromTable(table), demo.ScreenStart, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
