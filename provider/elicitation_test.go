package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

type formFiller struct {
	_ annotations.Elicitation `method:"Confirm"`
}

func (formFiller) Confirm(ctx context.Context, params *mcp.ElicitParams) (*mcp.ElicitResult, error) {
	if strings.Contains(params.Message, "dangerous") {
		return &mcp.ElicitResult{Action: "decline"}, nil
	}
	return &mcp.ElicitResult{
		Action:  "accept",
		Content: map[string]any{"confirmed": true},
	}, nil
}

func elicitReqFor(message string) *mcp.ElicitRequest {
	return &mcp.ElicitRequest{Params: &mcp.ElicitParams{Message: message}}
}

func TestElicitationProvider_ParamsInput(t *testing.T) {
	specs, err := NewElicitationProvider([]any{formFiller{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("expected 1 elicitation spec, got %d", len(specs))
	}

	res, err := specs[0].Handler(context.Background(), elicitReqFor("proceed?"))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if res.Action != "accept" || res.Content["confirmed"] != true {
		t.Fatalf("unexpected result: %+v", res)
	}

	res, err = specs[0].Handler(context.Background(), elicitReqFor("dangerous?"))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if res.Action != "decline" {
		t.Fatalf("expected decline, got %+v", res)
	}
}

type shyFiller struct {
	_ annotations.Elicitation `method:"Confirm"`
	_ annotations.Elicitation `method:"Nope"`
}

func (shyFiller) Confirm(req *mcp.ElicitRequest) *mcp.ElicitResult {
	return nil
}

// Nope returns the wrong type, so it is skipped.
func (shyFiller) Nope(req *mcp.ElicitRequest) string { return "" }

func TestElicitationProvider_NilResultAndSkip(t *testing.T) {
	specs, err := NewElicitationProvider([]any{shyFiller{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("expected the mistyped method to be skipped, got %d specs", len(specs))
	}
	_, err = specs[0].Handler(context.Background(), elicitReqFor("?"))
	if err == nil || !strings.Contains(err.Error(), "returned no result") {
		t.Fatalf("expected nil result error, got %v", err)
	}
}

type lockedFiller struct {
	_ annotations.Elicitation `method:"Confirm"`
}

func (lockedFiller) Confirm(params *mcp.ElicitParams) (*mcp.ElicitResult, error) {
	return nil, errors.New("no user present")
}

func TestElicitationProvider_MethodErrorPropagates(t *testing.T) {
	specs, err := NewElicitationProvider([]any{lockedFiller{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	_, err = specs[0].Handler(context.Background(), elicitReqFor("?"))
	if err == nil || err.Error() != "no user present" {
		t.Fatalf("expected method error to propagate, got %v", err)
	}
}
