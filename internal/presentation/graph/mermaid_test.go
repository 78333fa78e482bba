package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
)

func scanner() *domain.Definition {
	return &domain.Definition{
		States: []domain.StateDecl{{Name: "Q0", Initial: true}, {Name: "Q1", Final: true}},
		Rules: []domain.Rule{
			{From: "Q0", Read: domain.Zero, To: "Q0", Write: domain.Zero, Move: domain.Right},
			{From: "Q0", Read: domain.One, To: "Q1", Write: domain.Blank, Move: domain.Left},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		def         *domain.Definition
		overlay     *graph.GraphOverlay
		contains    []string
		notContains []string
	}{
		{
			name: "Structure",
			def:  scanner(),
			contains: []string{
				"stateDiagram-v2\n",
				"    [*] --> Q0\n",
				"    Q0 --> Q0 : 0/0,R\n",
				"    Q0 --> Q1 : 1/#35;,L\n",
				"    Q1 --> [*]\n",
			},
			notContains: []string{"classDef", "Q0 --> [*]"},
		},
		{
			name: "Sanitized IDs",
			def: &domain.Definition{
				States: []domain.StateDecl{{Name: "scan.left", Initial: true}, {Name: "done-ok", Final: true}},
				Rules:  []domain.Rule{{From: "scan.left", Read: domain.One, To: "done-ok", Write: domain.One, Move: domain.Stay}},
			},
			contains: []string{
				"state \"scan.left\" as scan_left",
				"scan_left --> done_ok : 1/1,S",
			},
		},
		{
			name: "Overlay",
			def:  scanner(),
			overlay: &graph.GraphOverlay{
				VisitedStates: []string{"Q0", "Q0", "Q1"},
				CurrentState:  "Q1",
				Status:        domain.StatusRejected,
			},
			contains: []string{
				"classDef visited",
				"class Q0 visited\n",
				"class Q1 rejected\n",
			},
			notContains: []string{"class Q1 visited"},
		},
		{
			name:     "Nil definition",
			def:      nil,
			contains: []string{"stateDiagram-v2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.def, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_VisitedOnce(t *testing.T) {
	got := graph.GenerateMermaid(scanner(), &graph.GraphOverlay{VisitedStates: []string{"Q0", "Q0"}})
	assert.Equal(t, 1, strings.Count(got, "class Q0 visited"))
}

func TestOverlayFromTrace(t *testing.T) {
	trace := domain.Trace{
		{State: "Q0", Status: domain.StatusAccepting},
		{State: "Q1", Status: domain.StatusAccepted},
		{State: "Q1", Status: domain.StatusAccepted, Final: true},
	}
	overlay := graph.OverlayFromTrace(trace)
	assert.Equal(t, []string{"Q0", "Q1"}, overlay.VisitedStates)
	assert.Equal(t, "Q1", overlay.CurrentState)
	assert.Equal(t, domain.StatusAccepted, overlay.Status)

	assert.Nil(t, graph.OverlayFromTrace(nil))
}
