package dsl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     func() *domain.Definition
		want    error
		subject string
	}{
		{
			name: "Valid",
			def: func() *domain.Definition {
				b := dsl.New().Tape("0")
				b.State("Q0").Initial()
				return b.Rule("Q0", domain.Zero, domain.One, domain.Stay, "Q0").Definition()
			},
		},
		{
			name: "Second initial state",
			def: func() *domain.Definition {
				b := dsl.New().Tape("0")
				b.State("Q0").Initial().State("Q1").Initial()
				return b.Definition()
			},
			want:    domain.ErrMultipleInitialStates,
			subject: "Q1",
		},
		{
			name: "Unnamed initial state before a named one",
			def: func() *domain.Definition {
				def := dsl.New().Tape("0").Definition()
				def.States = []domain.StateDecl{{Name: "", Initial: true}, {Name: "A", Initial: true}}
				return def
			},
			want:    domain.ErrStateUnnamed,
			subject: "state 0",
		},
		{
			name: "Unnamed state",
			def: func() *domain.Definition {
				def := dsl.New().Tape("0").Definition()
				def.States = []domain.StateDecl{{Name: "A", Initial: true}, {Name: ""}}
				return def
			},
			want:    domain.ErrStateUnnamed,
			subject: "state 1",
		},
		{
			name: "Rule to an undeclared state",
			def: func() *domain.Definition {
				b := dsl.New().Tape("0")
				b.State("Q0").Initial()
				return b.Rule("Q0", domain.Zero, domain.Zero, domain.Right, "Q9").Definition()
			},
			want: domain.ErrStateNotDeclared,
		},
		{
			name: "Duplicate left-hand side",
			def: func() *domain.Definition {
				b := dsl.New().Tape("0")
				b.State("Q0").Initial()
				return b.
					Rule("Q0", domain.Zero, domain.Zero, domain.Right, "Q0").
					Rule("Q0", domain.Zero, domain.One, domain.Left, "Q0").
					Definition()
			},
			want:    domain.ErrRuleAlreadyDefined,
			subject: "(Q0, 0) -> (Q0, 1, left)",
		},
		{
			name: "Tape never set",
			def: func() *domain.Definition {
				b := dsl.New()
				b.State("Q0").Initial()
				return b.Definition()
			},
			want: domain.ErrTapeMissing,
		},
		{
			name: "Tape without valid symbols",
			def: func() *domain.Definition {
				b := dsl.New().Tape("abc")
				b.State("Q0").Initial()
				return b.Definition()
			},
			want: domain.ErrTapeEmpty,
		},
		{
			name: "No initial state",
			def: func() *domain.Definition {
				b := dsl.New().Tape("0")
				b.State("Q0").Final()
				return b.Definition()
			},
			want: domain.ErrNoInitialState,
		},
		{
			name: "Empty tape wins over missing initial state",
			def:  func() *domain.Definition { return dsl.New().Tape("").Definition() },
			want: domain.ErrTapeEmpty,
		},
		{
			name: "Nothing declared",
			def:  func() *domain.Definition { return dsl.New().Definition() },
			want: domain.ErrTapeMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dsl.Validate(tt.def())
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)

			var ve *dsl.ValidationError
			require.True(t, errors.As(err, &ve))
			if tt.subject != "" {
				assert.Equal(t, tt.subject, ve.Subject)
			}
			assert.NotEmpty(t, ve.Hints())
		})
	}
}

func TestValidate_StatesCheckedBeforeRules(t *testing.T) {
	def := &domain.Definition{
		States: []domain.StateDecl{{Name: "Q0", Initial: true}, {Name: "Q1", Initial: true}},
		Rules:  []domain.Rule{{From: "Q5", To: "Q6"}},
	}
	assert.ErrorIs(t, dsl.Validate(def), domain.ErrMultipleInitialStates)
}

func TestValidate_NoStatesReportsMissingInitial(t *testing.T) {
	def := &domain.Definition{}
	def.SetTape("0")
	assert.ErrorIs(t, dsl.Validate(def), domain.ErrNoInitialState)
}

func TestCompile_RejectsInvalid(t *testing.T) {
	program, err := dsl.Compile(dsl.New().Tape("").Definition())
	assert.Nil(t, program)
	assert.ErrorIs(t, err, domain.ErrTapeEmpty)
}

func TestHintsFor_Unknown(t *testing.T) {
	assert.Nil(t, dsl.HintsFor(errors.New("boom")))
}
