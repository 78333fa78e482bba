/*
Package turing is a deterministic single-tape Turing machine engine over the
alphabet {0, 1, #}, designed for teaching: every run produces a complete trace
of snapshots that can be replayed, rendered and assessed.

# Concept

A machine is described by a Definition: the raw tape text, the declared
states (one initial, any number final) and the transition rules. The
definition is validated by pkg/dsl, compiled into engine inputs and executed
by an internal runtime that grows the tape on demand in both directions. The
machine halts when no rule matches the current (state, symbol); it accepts iff
it halts in a final state.

# Key Features

  - Deterministic Execution: the same definition always yields the same trace.
  - Hexagonal Architecture: the core is decoupled from storage, transport and UI.
  - Bounded Runs: every run through the Engine honours a step limit.
  - Assessment: runs are judged against an expected tape or acceptance.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/turing"
	)

	func main() {
		eng := turing.New(turing.WithStepLimit(1000))

		def, err := eng.Load("examples/addition.yaml")
		if err != nil {
			log.Fatal(err)
		}

		run, err := eng.Run(context.Background(), def)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(run.Status, run.FinalTape, run.Verdict.Message)
	}
*/
package turing
