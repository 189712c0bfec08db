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

type progressBar struct {
	_     annotations.Progress `method:"Tick"`
	_     annotations.Progress `method:"TickParams"`
	_     annotations.Progress `method:"TickReq"`
	ticks []string
}

func (b *progressBar) Tick(progress, total float64, message string) {
	b.ticks = append(b.ticks, message)
	_ = progress / total
}

func (b *progressBar) TickParams(ctx context.Context, params *mcp.ProgressNotificationParams) {
	b.ticks = append(b.ticks, "params:"+params.Message)
}

func (b *progressBar) TickReq(req *mcp.ProgressNotificationClientRequest) error {
	b.ticks = append(b.ticks, "req:"+req.Params.Message)
	return nil
}

func progressReqFor(progress, total float64, message string) *mcp.ProgressNotificationClientRequest {
	return &mcp.ProgressNotificationClientRequest{Params: &mcp.ProgressNotificationParams{
		ProgressToken: "tok-1",
		Progress:      progress,
		Total:         total,
		Message:       message,
	}}
}

func TestProgressProvider_AllShapes(t *testing.T) {
	bar := &progressBar{}
	specs, err := NewProgressProvider([]any{bar}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("expected 3 progress specs, got %d", len(specs))
	}

	for _, s := range specs {
		s.Handler(context.Background(), progressReqFor(1, 4, "step"))
	}

	joined := strings.Join(bar.ticks, ",")
	for _, want := range []string{"step", "params:step", "req:step"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing delivery %q in %v", want, bar.ticks)
		}
	}
}

type stuckBar struct {
	_ annotations.Progress `method:"Tick"`
}

func (stuckBar) Tick(progress, total float64, message string) error {
	return errors.New("bar stuck")
}

func TestProgressProvider_ConsumerErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	specs, err := NewProgressProvider([]any{stuckBar{}}, WithLogger(log)).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}

	specs[0].Handler(context.Background(), progressReqFor(2, 4, "half"))

	out := buf.String()
	if !strings.Contains(out, "progress consumer failed") || !strings.Contains(out, "bar stuck") {
		t.Fatalf("expected consumer error in log, got %q", out)
	}
}

type oddBar struct {
	_ annotations.Progress `method:"Tick"`
}

// Tick takes the triple in the wrong order, so it is skipped.
func (oddBar) Tick(message string, progress, total float64) {}

func TestProgressProvider_Skip(t *testing.T) {
	specs, err := NewProgressProvider([]any{oddBar{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	if len(specs) != 0 {
		t.Fatalf("expected misordered consumer to be skipped, got %d specs", len(specs))
	}
}
