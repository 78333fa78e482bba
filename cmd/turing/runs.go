package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/pkg/ports"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage recorded runs",
	Long:  `Lists, shows and deletes runs saved with 'turing run --save' or through the server.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store ports.RunStore) error {
			return cli.ListRuns(cmd.Context(), store, cmd.OutOrStdout())
		})
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return withStore(func(store ports.RunStore) error {
			return cli.ShowRun(cmd.Context(), store, args[0], asJSON, cmd.OutOrStdout())
		})
	},
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store ports.RunStore) error {
			return cli.DeleteRun(cmd.Context(), store, args[0], cmd.OutOrStdout())
		})
	},
}

// persistentStore swaps the memory backend, which is gone when the command
// exits, for the file backend.
func persistentStore() {
	if cfg.Store.Backend == config.StoreMemory {
		cfg.Store.Backend = config.StoreFile
	}
}

func withStore(fn func(ports.RunStore) error) error {
	persistentStore()
	store, err := cli.NewStore(cfg)
	if err != nil {
		return err
	}
	if c, ok := store.(interface{ Close() error }); ok {
		defer c.Close()
	}
	return fn(store)
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd)

	runsShowCmd.Flags().Bool("json", false, "Print the full run record as JSON")
}
