// Package assessment judges a finished run against the goal of a lesson.
package assessment

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Verdict messages.
const (
	MessageAccepted   = "Good job! The Turing machine accepted your input."
	MessageTapeMatch  = "Good job! The tape contains what you were instructed to produce."
	MessageRejected   = "The Turing machine rejected your input."
	MessageIncomplete = "The Turing machine did not halt."
)

// Assess decides whether a run passes.
//
// When the definition names an expected tape, the run passes iff its final
// tape stringifies to exactly that text, whatever the final status. Otherwise
// it passes iff the run halted with status accepted. A failing verdict carries
// the definition's hints and solution.
func Assess(trace domain.Trace, def *domain.Definition) domain.Verdict {
	if def == nil {
		def = &domain.Definition{}
	}

	last, ok := trace.Last()
	if !ok || !last.Final {
		return fail(def, MessageIncomplete)
	}

	if def.Expect != "" {
		got := domain.Stringify(last.Tape)
		if got == def.Expect {
			return domain.Verdict{Passed: true, Message: MessageTapeMatch}
		}
		return fail(def, fmt.Sprintf("The tape is %q but %q was expected.", got, def.Expect))
	}

	if trace.Accepted() {
		return domain.Verdict{Passed: true, Message: MessageAccepted}
	}
	return fail(def, MessageRejected)
}

// Failure builds the verdict for a definition that could not be run at all.
func Failure(err error, hints []string) domain.Verdict {
	return domain.Verdict{
		Passed:  false,
		Message: err.Error(),
		Hints:   append([]string(nil), hints...),
	}
}

func fail(def *domain.Definition, message string) domain.Verdict {
	return domain.Verdict{
		Passed:   false,
		Message:  message,
		Hints:    append([]string(nil), def.Hints...),
		Solution: def.Solution,
	}
}
