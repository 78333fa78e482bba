/*
Package dsl provides a fluent builder and the validation layer for Turing machine definitions.

A definition is checked here before any engine is built. Validation follows declaration order
and reports the first problem it finds, so the message always points at the earliest mistake.

Example usage:

	def, err := dsl.New().
		Tape("000001").
		State("Q0").Initial().
		State("Q1").Final().
		Rule("Q0", domain.Zero, domain.Zero, domain.Right, "Q0").
		Rule("Q0", domain.One, domain.One, domain.Right, "Q1").
		Build()
	if err != nil {
		return err
	}

	program, err := dsl.Compile(def)
	if err != nil {
		return err
	}
	machine, err := program.Machine()
*/
package dsl
