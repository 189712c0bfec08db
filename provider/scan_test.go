package provider

import (
	"testing"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

func TestDefaultName(t *testing.T) {
	cases := map[string]string{
		"Add":        "add",
		"AddNumbers": "addNumbers",
		"ID":         "id",
		"URLFor":     "urlFor",
		"HTTPServer": "httpServer",
		"A":          "a",
		"":           "",
	}
	for in, want := range cases {
		if got := defaultName(in); got != want {
			t.Errorf("defaultName(%q) = %q, want %q", in, got, want)
		}
	}
}

type multiKind struct {
	_ annotations.Tool   `method:"Work" name:"work"`
	_ annotations.Prompt `method:"Ask" name:"ask"`
}

func (multiKind) Work() string { return "done" }
func (multiKind) Ask() string  { return "what" }

// A single struct can declare markers of several kinds; each scan only
// sees its own.
func TestScanMarkers_KindsAreIndependent(t *testing.T) {
	decls, err := scanMarkers([]any{multiKind{}}, toolMarker)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(decls) != 1 || decls[0].cfg.Method != "Work" {
		t.Fatalf("expected only the tool marker, got %+v", decls)
	}

	decls, err = scanMarkers([]any{multiKind{}}, promptMarker)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(decls) != 1 || decls[0].cfg.Method != "Ask" {
		t.Fatalf("expected only the prompt marker, got %+v", decls)
	}
}

type firstHalf struct {
	_ annotations.Tool `method:"First" name:"first"`
}

func (firstHalf) First() string { return "1" }

type secondHalf struct {
	_ annotations.Tool `method:"Second" name:"second"`
}

func (secondHalf) Second() string { return "2" }

func TestScanMarkers_MultipleCandidates(t *testing.T) {
	decls, err := scanMarkers([]any{firstHalf{}, &secondHalf{}}, toolMarker)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(decls) != 2 {
		t.Fatalf("expected declarations from both candidates, got %d", len(decls))
	}
	if decls[0].cfg.Name != "first" || decls[1].cfg.Name != "second" {
		t.Fatalf("expected candidate order preserved, got %+v", decls)
	}
}
