/*
Package domain contains the core domain models of the Turing machine engine.

It defines the closed tape alphabet, head directions, acceptance statuses,
named states, rules and the snapshot/trace records produced by a run. This
package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Symbol / Tape: the three-symbol alphabet (0, 1, #) and symbol sequences,
    with Interpret and Stringify converting from and to text.
  - State / Registry: named execution states and membership queries
    (declared, initial, final).
  - Rule: a transition keyed by (state, symbol read).
  - Snapshot / Trace: immutable records of every instant of a run.
  - Definition: the authoring-time description handed to the validation layer.
*/
package domain
