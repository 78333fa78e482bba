package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine.yaml>",
	Short: "Check a machine definition without running it",
	Long:  `Reports the first problem in the states, rules or tape of a definition, with hints.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(args[0], cmd.OutOrStdout())
	},
}

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <machine.yaml>",
	Short: "Export the machine as a Mermaid state diagram",
	Long: `Outputs a Mermaid diagram (stateDiagram-v2) of the machine. With --overlay the
machine is run first and the states it visited are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overlay, _ := cmd.Flags().GetBool("overlay")
		return cli.Graph(cmd.Context(), cfg, args[0], overlay, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Bool("overlay", false, "Highlight the states visited by a run")
}
