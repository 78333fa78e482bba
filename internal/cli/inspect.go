package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
)

// Validate loads the machine at path and reports the first definition error.
func Validate(path string, out io.Writer) error {
	eng := createEngine(config.Default(), nil, logging.NewNop())
	def, err := eng.Load(path)
	if err != nil {
		return err
	}
	if err := dsl.Validate(def); err != nil {
		printValidationError(out, err)
		return err
	}

	fmt.Fprintf(out, "Machine %q is valid: %d states, %d rules.\n", def.Name, len(def.States), len(def.Rules))
	return nil
}

// Graph prints the Mermaid diagram of the machine at path. With overlay, the
// machine is run first and the states it visited are highlighted.
func Graph(ctx context.Context, cfg *config.Config, path string, overlay bool, out io.Writer) error {
	eng := createEngine(cfg, nil, cfg.Logger())
	def, err := eng.Load(path)
	if err != nil {
		return err
	}

	var o *graph.GraphOverlay
	if overlay {
		trace, err := eng.Execute(ctx, def)
		if err != nil && !errors.Is(err, domain.ErrStepLimitExceeded) {
			return fmt.Errorf("cannot run machine for overlay: %w", err)
		}
		o = graph.OverlayFromTrace(trace)
	}

	_, err = fmt.Fprint(out, graph.GenerateMermaid(def, o))
	return err
}
