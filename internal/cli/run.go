package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/assessment"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Path string

	// Tape replaces the definition's tape when set.
	Tape *string

	Limit  int
	Delay  time.Duration
	JSON   bool
	Diffs  bool
	Report bool
	Save   bool
	// Step waits for a command on In before every frame.
	Step bool

	Out io.Writer
	In  io.Reader
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run loads a machine, runs it, replays the trace and prints the verdict.
// The step-limit error is returned after the partial trace has been shown.
func Run(ctx context.Context, cfg *config.Config, opts RunOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	tty := IsTerminal(out)
	logger := cfg.Logger()

	runCfg := *cfg
	if opts.Limit != 0 {
		runCfg.Run.StepLimit = opts.Limit
	}

	var store ports.RunStore
	if opts.Save {
		s, err := NewStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore(s, logger)
		store = s
	}
	eng := createEngine(&runCfg, store, logger)

	def, err := eng.Load(opts.Path)
	if err != nil {
		return err
	}
	if opts.Tape != nil {
		def.SetTape(*opts.Tape)
	}

	if tty && !opts.JSON {
		tui.PrintBanner(out, turing.Version)
	}

	run, runErr := eng.Run(ctx, def)
	if runErr != nil && run == nil {
		printValidationError(out, runErr)
		return runErr
	}

	if err := play(ctx, run.Trace, opts, out, tty); err != nil {
		return err
	}

	if !opts.JSON {
		printVerdict(out, run, tty)
		if opts.Report {
			if err := printReport(out, def.Name, run, tty); err != nil {
				return err
			}
		}
		if store != nil {
			fmt.Fprintf(out, "Saved run %s\n", run.ID)
		}
	}
	return runErr
}

func play(ctx context.Context, trace domain.Trace, opts RunOptions, out io.Writer, tty bool) error {
	var handler runner.FrameHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(out, opts.Diffs)
	} else {
		profile := termenv.Ascii
		if tty {
			profile = termenv.EnvColorProfile()
		}
		handler = runner.NewTextHandler(out, profile, runner.WithOverwrite(tty && opts.Delay > 0 && !opts.Step))
	}

	playerOpts := []runner.Option{runner.WithDelay(opts.Delay)}
	if opts.Step {
		in := opts.In
		if in == nil {
			in = os.Stdin
		}
		playerOpts = append(playerOpts, runner.WithControls(in))
	}

	err := runner.NewPlayer(handler, playerOpts...).Play(ctx, trace)
	if errors.Is(err, runner.ErrStopped) {
		return nil
	}
	return err
}

func printValidationError(out io.Writer, err error) {
	v := assessment.Failure(err, dsl.HintsFor(err))
	fmt.Fprintf(out, "Error: %s\n", v.Message)
	for _, hint := range v.Hints {
		fmt.Fprintf(out, "  hint: %s\n", hint)
	}
}

func printVerdict(out io.Writer, run *domain.Run, tty bool) {
	if run.Verdict == nil {
		return
	}
	profile := termenv.Ascii
	if tty {
		profile = termenv.EnvColorProfile()
	}

	mark := profile.String("PASS").Foreground(profile.Color(tui.ColorAccepted))
	if !run.Verdict.Passed {
		mark = profile.String("FAIL").Foreground(profile.Color(tui.ColorRejected))
	}
	fmt.Fprintf(out, "%s %s\n", mark, run.Verdict.Message)
	if run.Verdict.Passed {
		return
	}
	for _, hint := range run.Verdict.Hints {
		fmt.Fprintf(out, "  hint: %s\n", hint)
	}
}

func printReport(out io.Writer, name string, run *domain.Run, tty bool) error {
	render := tui.NewPlainRenderer()
	if tty {
		render = tui.NewRenderer()
	}
	text, err := render(tui.Report(name, run.Trace, run.Verdict))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, text)
	return err
}
