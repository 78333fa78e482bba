package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// ListRuns prints one line per stored run, oldest first.
func ListRuns(ctx context.Context, store ports.RunStore, out io.Writer) error {
	ids, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No runs stored.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCREATED\tSTATUS\tSTEPS\tTAPE")
	for _, id := range ids {
		run, err := store.Load(ctx, id)
		if errors.Is(err, domain.ErrRunNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load run %s: %w", id, err)
		}
		status := run.Status.String()
		if run.Limited {
			status = "limited"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID, run.Name, run.CreatedAt.Local().Format(time.DateTime), status, run.Steps, run.FinalTape)
	}
	return tw.Flush()
}

// ShowRun prints a stored run as a markdown report, or as JSON.
func ShowRun(ctx context.Context, store ports.RunStore, id string, asJSON bool, out io.Writer) error {
	run, err := store.Load(ctx, id)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}
	return printReport(out, run.Name, run, IsTerminal(out))
}

// DeleteRun removes a stored run.
func DeleteRun(ctx context.Context, store ports.RunStore, id string, out io.Writer) error {
	if _, err := store.Load(ctx, id); err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	fmt.Fprintf(out, "Deleted run %s\n", id)
	return nil
}
