package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// GraphOverlay contains run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []string
	CurrentState  string
	// Status colors the current state: orange accepting, green accepted, red rejected.
	Status domain.Status
}

// OverlayFromTrace highlights the states a run went through and where it ended.
func OverlayFromTrace(trace domain.Trace) *GraphOverlay {
	last, ok := trace.Last()
	if !ok {
		return nil
	}
	overlay := &GraphOverlay{
		CurrentState: last.State.Name(),
		Status:       last.Status,
	}
	for _, s := range trace.Visited() {
		overlay.VisitedStates = append(overlay.VisitedStates, s.Name())
	}
	return overlay
}

// GenerateMermaid produces a Mermaid stateDiagram-v2 of a machine definition.
// The initial state gets an entry arrow from [*] and every final state an exit
// arrow to [*]. Each rule becomes one edge labelled "read/write,move".
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(def *domain.Definition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")
	if def == nil {
		return sb.String()
	}

	for _, s := range def.States {
		safeID := sanitizeMermaidID(s.Name)
		if safeID != s.Name {
			sb.WriteString(fmt.Sprintf("    state \"%s\" as %s\n", s.Name, safeID))
		}
	}
	for _, s := range def.InitialStates() {
		sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeMermaidID(s.Name())))
	}

	for _, r := range def.Rules {
		sb.WriteString(fmt.Sprintf("    %s --> %s : %s\n",
			sanitizeMermaidID(r.From.Name()),
			sanitizeMermaidID(r.To.Name()),
			edgeLabel(r),
		))
	}

	for _, s := range def.FinalStates() {
		sb.WriteString(fmt.Sprintf("    %s --> [*]\n", sanitizeMermaidID(s.Name())))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef accepting fill:#ffb74d,stroke:#e65100,stroke-width:4px,color:#000\n")
		sb.WriteString("    classDef accepted fill:#81c784,stroke:#1b5e20,stroke-width:4px,color:#000\n")
		sb.WriteString("    classDef rejected fill:#e57373,stroke:#b71c1c,stroke-width:4px,color:#000\n")

		current := sanitizeMermaidID(overlay.CurrentState)
		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedStates {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" && safeID != current {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited\n", safeID))
			}
		}

		if current != "" {
			sb.WriteString(fmt.Sprintf("    class %s %s\n", current, overlay.Status.String()))
		}
	}

	return sb.String()
}

// edgeLabel renders a rule's right-hand side. Mermaid reads a bare # as the
// start of an entity code, so the blank symbol is written as its code.
func edgeLabel(r domain.Rule) string {
	return fmt.Sprintf("%s/%s,%s", symbolLabel(r.Read), symbolLabel(r.Write), r.Move.Short())
}

func symbolLabel(s domain.Symbol) string {
	if s == domain.Blank {
		return "#35;"
	}
	return s.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
