package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/ports"
)

// RunsURI is the resource listing stored runs.
const RunsURI = "turing://runs"

// Engine defines what the MCP server needs from the Turing engine.
type Engine interface {
	Parse(data []byte, format string) (*domain.Definition, error)
	Run(ctx context.Context, def *domain.Definition) (*domain.Run, error)
}

// MachineArgs are the arguments shared by every machine tool.
type MachineArgs struct {
	Definition   string  `json:"definition"`
	Format       string  `json:"format,omitempty"`
	Tape         *string `json:"tape,omitempty"`
	IncludeTrace bool    `json:"include_trace,omitempty"`
}

// RunResult is the structured output of run_machine.
type RunResult struct {
	ID        string          `json:"id" jsonschema_description:"Run identifier"`
	Name      string          `json:"name,omitempty"`
	Status    string          `json:"status" jsonschema_description:"accepted or rejected, accepting when the step limit was hit"`
	Steps     int             `json:"steps" jsonschema_description:"Transitions applied"`
	FinalTape string          `json:"final_tape" jsonschema_description:"Tape after the last step, blanks included"`
	Limited   bool            `json:"limited,omitempty" jsonschema_description:"The step limit stopped the run"`
	Verdict   *domain.Verdict `json:"verdict,omitempty"`
	Trace     []string        `json:"trace,omitempty" jsonschema_description:"One line per snapshot when include_trace is set"`
}

// ValidationResult is the structured output of validate_machine.
type ValidationResult struct {
	Valid bool     `json:"valid"`
	Error string   `json:"error,omitempty"`
	Hints []string `json:"hints,omitempty"`
}

// Server wraps the Turing Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	store     ports.RunStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. The store backs the runs
// resource and may be nil.
func NewServer(engine Engine, store ports.RunStore) *Server {
	s := &Server{
		engine:    engine,
		store:     store,
		mcpServer: server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
	}
	s.registerTools()
	if store != nil {
		s.registerResources()
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over Server-Sent Events on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	definition := mcp.WithString("definition", mcp.Required(),
		mcp.Description("Machine definition with tape, states and rules"))
	format := mcp.WithString("format",
		mcp.Description("Definition format: yaml (default) or json"),
		mcp.Enum("yaml", "json"))

	// TOOL: run_machine
	s.mcpServer.AddTool(mcp.NewTool("run_machine",
		mcp.WithDescription("Run a Turing machine definition to completion and assess the result."),
		definition,
		format,
		mcp.WithString("tape", mcp.Description("Tape to run on instead of the definition's tape")),
		mcp.WithBoolean("include_trace", mcp.Description("Return one line per snapshot")),
		mcp.WithOutputSchema[RunResult](),
	), mcp.NewStructuredToolHandler(s.handleRunMachine))

	// TOOL: validate_machine
	s.mcpServer.AddTool(mcp.NewTool("validate_machine",
		mcp.WithDescription("Check a machine definition without running it."),
		definition,
		format,
		mcp.WithOutputSchema[ValidationResult](),
	), mcp.NewStructuredToolHandler(s.handleValidateMachine))

	// TOOL: render_graph
	s.mcpServer.AddTool(mcp.NewTool("render_graph",
		mcp.WithDescription("Render a machine definition as a Mermaid state diagram."),
		definition,
		format,
	), s.handleRenderGraph)
}

func (s *Server) parse(args MachineArgs) (*domain.Definition, error) {
	def, err := s.engine.Parse([]byte(args.Definition), args.Format)
	if err != nil {
		return nil, err
	}
	if args.Tape != nil {
		def.SetTape(*args.Tape)
	}
	return def, nil
}

func (s *Server) handleRunMachine(ctx context.Context, request mcp.CallToolRequest, args MachineArgs) (RunResult, error) {
	def, err := s.parse(args)
	if err != nil {
		return RunResult{}, err
	}

	run, err := s.engine.Run(ctx, def)
	if err != nil && (run == nil || !errors.Is(err, domain.ErrStepLimitExceeded)) {
		slog.Warn("MCP run_machine failed", "err", err)
		return RunResult{}, err
	}

	result := RunResult{
		ID:        run.ID,
		Name:      run.Name,
		Status:    run.Status.String(),
		Steps:     run.Steps,
		FinalTape: run.FinalTape,
		Limited:   run.Limited,
		Verdict:   run.Verdict,
	}
	if args.IncludeTrace {
		for _, snap := range run.Trace {
			result.Trace = append(result.Trace, traceLine(snap))
		}
	}
	return result, nil
}

func traceLine(snap domain.Snapshot) string {
	return fmt.Sprintf("%d %s %s %s@%d", snap.Step, snap.State.Name(), snap.Status, domain.Stringify(snap.Tape), snap.Position)
}

func (s *Server) handleValidateMachine(ctx context.Context, request mcp.CallToolRequest, args MachineArgs) (ValidationResult, error) {
	def, err := s.parse(args)
	if err != nil {
		return ValidationResult{Error: err.Error()}, nil
	}
	if err := dsl.Validate(def); err != nil {
		return ValidationResult{Error: err.Error(), Hints: dsl.HintsFor(err)}, nil
	}
	return ValidationResult{Valid: true}, nil
}

func (s *Server) handleRenderGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args MachineArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}
	def, err := s.parse(args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(def, nil)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: turing://runs
	s.mcpServer.AddResource(mcp.NewResource(RunsURI, "Stored runs",
		mcp.WithResourceDescription("IDs of every stored run, oldest first"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RunsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
