/*
Package runner replays machine traces at a human pace.

It acts as the bridge between a finished trace and the outside world. The Player
walks the snapshots in order and hands each one to a pluggable FrameHandler, which
decides how a frame looks: a colored terminal line or a JSON object.

# Key Components

  - Player: Paces frames, honours cancellation and optional step controls.
  - TextHandler: Terminal rendering, overwriting a single line when animated.
  - JSONHandler: One JSON object per line, full snapshots or diffs.

# Usage

	p := runner.NewPlayer(
		runner.NewTextHandler(os.Stdout, termenv.EnvColorProfile()),
		runner.WithDelay(200*time.Millisecond),
	)

	if err := p.Play(ctx, trace); err != nil {
		log.Fatal(err)
	}
*/
package runner
