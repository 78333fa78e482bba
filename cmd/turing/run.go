package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/runner"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <machine.yaml>",
	Short: "Run a machine and replay its trace",
	Long: `Loads a machine definition, runs it under the step limit and replays every
snapshot. On a terminal the replay is animated; otherwise it is printed at once.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.RunOptions{
			Path: args[0],
			Out:  cmd.OutOrStdout(),
			In:   cmd.InOrStdin(),
		}
		if cmd.Flags().Changed("tape") {
			tape, _ := cmd.Flags().GetString("tape")
			opts.Tape = &tape
		}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Diffs, _ = cmd.Flags().GetBool("diff")
		opts.Report, _ = cmd.Flags().GetBool("report")
		opts.Step, _ = cmd.Flags().GetBool("step")
		opts.Save, _ = cmd.Flags().GetBool("save")
		if opts.Save {
			persistentStore()
		}

		opts.Delay = cfg.Run.Delay
		if cmd.Flags().Changed("delay") {
			opts.Delay, _ = cmd.Flags().GetDuration("delay")
		} else if !cli.IsTerminal(opts.Out) {
			opts.Delay = 0
		}

		sm := runner.NewSignalManager(cmd.Context())
		defer sm.Stop()
		return cli.Run(sm.Context(), cfg, opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("tape", "", "Run on this tape instead of the definition's")
	runCmd.Flags().Int("limit", 0, "Maximum number of steps (default from config)")
	runCmd.Flags().Duration("delay", 0, "Pause between frames (default from config on a terminal)")
	runCmd.Flags().Bool("json", false, "Print NDJSON frames instead of text")
	runCmd.Flags().Bool("diff", false, "With --json, print diffs instead of full snapshots")
	runCmd.Flags().Bool("report", false, "Print a markdown report after the replay")
	runCmd.Flags().Bool("save", false, "Record the run in the configured store")
	runCmd.Flags().Bool("step", false, "Step through frames: Enter steps, p plays, r rewinds, q quits")
}
