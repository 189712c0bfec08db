package provider

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

type logSink struct {
	_      annotations.Logging `method:"Consume"`
	levels []mcp.LoggingLevel
	bodies []string
}

func (s *logSink) Consume(ctx context.Context, params *mcp.LoggingMessageParams) {
	s.levels = append(s.levels, params.Level)
	s.bodies = append(s.bodies, params.Data.(string))
}

func loggingReqFor(level mcp.LoggingLevel, data any) *mcp.LoggingMessageRequest {
	return &mcp.LoggingMessageRequest{Params: &mcp.LoggingMessageParams{
		Level: level,
		Data:  data,
	}}
}

func TestLoggingProvider_ParamsInput(t *testing.T) {
	sink := &logSink{}
	specs, err := NewLoggingProvider([]any{sink}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("expected 1 logging spec, got %d", len(specs))
	}

	specs[0].Handler(context.Background(), loggingReqFor("warning", "disk almost full"))
	specs[0].Handler(context.Background(), loggingReqFor("info", "recovered"))

	if len(sink.levels) != 2 || sink.levels[0] != "warning" || sink.bodies[1] != "recovered" {
		t.Fatalf("unexpected deliveries: levels=%v bodies=%v", sink.levels, sink.bodies)
	}
}

type faultySink struct {
	_ annotations.Logging `method:"Consume"`
}

func (faultySink) Consume(req *mcp.LoggingMessageRequest) error {
	return errors.New("sink clogged")
}

func TestLoggingProvider_ConsumerErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	specs, err := NewLoggingProvider([]any{faultySink{}}, WithLogger(log)).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}

	specs[0].Handler(context.Background(), loggingReqFor("error", "boom"))

	out := buf.String()
	if !strings.Contains(out, "logging consumer failed") || !strings.Contains(out, "sink clogged") {
		t.Fatalf("expected consumer error in log, got %q", out)
	}
}

type panickySink struct {
	_ annotations.Logging `method:"Consume"`
}

func (panickySink) Consume(params *mcp.LoggingMessageParams) {
	panic("cannot even")
}

func TestLoggingProvider_ConsumerPanicIsContained(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	specs, err := NewLoggingProvider([]any{panickySink{}}, WithLogger(log)).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}

	specs[0].Handler(context.Background(), loggingReqFor("debug", "x"))

	if out := buf.String(); !strings.Contains(out, "cannot even") {
		t.Fatalf("expected panic message in log, got %q", out)
	}
}

type wrongSink struct {
	_ annotations.Logging `method:"Consume"`
}

// Consume returns a string, which no logging shape allows.
func (wrongSink) Consume(params *mcp.LoggingMessageParams) string { return "" }

func TestLoggingProvider_Skip(t *testing.T) {
	specs, err := NewLoggingProvider([]any{wrongSink{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	if len(specs) != 0 {
		t.Fatalf("expected mistyped consumer to be skipped, got %d specs", len(specs))
	}
}
