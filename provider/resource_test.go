package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

type workspace struct {
	_ annotations.Resource         `method:"Readme" uri:"file:///readme.md" name:"readme" title:"Readme" description:"Project readme" mimeType:"text/markdown" audience:"user,assistant" priority:"0.8"`
	_ annotations.Resource         `method:"Icon" uri:"file:///icon.png" mimeType:"image/png"`
	_ annotations.Resource         `method:"Manifest" uri:"file:///manifest.json"`
	_ annotations.Resource         `method:"Mirror" uri:"file:///mirror"`
	_ annotations.Resource         `method:"Odd" uri:"file:///odd"`
	_ annotations.ResourceTemplate `method:"File" uri:"file:///{path}" name:"file" description:"Any file"`
}

func (workspace) Readme() string { return "# readme" }

func (workspace) Icon(ctx context.Context) ([]byte, error) {
	return []byte{0x89, 0x50, 0x4e, 0x47}, nil
}

func (workspace) Manifest(uri string) []*mcp.ResourceContents {
	return []*mcp.ResourceContents{{URI: uri, MIMEType: "application/json", Text: "{}"}}
}

func (workspace) Mirror(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{{
		URI:  req.Params.URI,
		Text: "mirrored",
	}}}, nil
}

// Odd returns an int, which no resource shape allows.
func (workspace) Odd() int { return 3 }

func (workspace) File(ctx context.Context, uri string) (string, error) {
	return "contents of " + uri, nil
}

func readReq(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func resourceByURI(t *testing.T, specs []ResourceSpec, uri string) ResourceSpec {
	t.Helper()
	for _, s := range specs {
		if s.Resource.URI == uri {
			return s
		}
	}
	t.Fatalf("resource %q not found in %d specs", uri, len(specs))
	return ResourceSpec{}
}

func TestResourceProvider_ScanAndSkip(t *testing.T) {
	specs, templates, err := NewResourceProvider([]any{workspace{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	// Odd is silently skipped; four resources and one template survive.
	if len(specs) != 4 {
		uris := make([]string, 0, len(specs))
		for _, s := range specs {
			uris = append(uris, s.Resource.URI)
		}
		t.Fatalf("expected 4 resources, got %v", uris)
	}
	if len(templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(templates))
	}
	if templates[0].Template.URITemplate != "file:///{path}" {
		t.Fatalf("unexpected template: %+v", templates[0].Template)
	}
}

func TestResourceProvider_Descriptor(t *testing.T) {
	specs, _, err := NewResourceProvider([]any{workspace{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	readme := resourceByURI(t, specs, "file:///readme.md")
	r := readme.Resource
	if r.Name != "readme" || r.Title != "Readme" || r.Description != "Project readme" || r.MIMEType != "text/markdown" {
		t.Fatalf("unexpected descriptor: %+v", r)
	}
	if r.Annotations == nil {
		t.Fatal("expected audience and priority annotations")
	}
	if len(r.Annotations.Audience) != 2 || r.Annotations.Audience[0] != mcp.Role("user") {
		t.Fatalf("unexpected audience: %+v", r.Annotations.Audience)
	}
	if r.Annotations.Priority != 0.8 {
		t.Fatalf("unexpected priority: %v", r.Annotations.Priority)
	}

	// Without a name tag the method name is lowered.
	icon := resourceByURI(t, specs, "file:///icon.png")
	if icon.Resource.Name != "icon" || icon.Resource.Annotations != nil {
		t.Fatalf("unexpected icon descriptor: %+v", icon.Resource)
	}
}

func TestResourceProvider_TextAndBlob(t *testing.T) {
	specs, _, err := NewResourceProvider([]any{workspace{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}

	readme := resourceByURI(t, specs, "file:///readme.md")
	res, err := readme.Handler(context.Background(), readReq("file:///readme.md"))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(res.Contents) != 1 {
		t.Fatalf("expected one contents entry, got %+v", res.Contents)
	}
	c := res.Contents[0]
	if c.URI != "file:///readme.md" || c.MIMEType != "text/markdown" || c.Text != "# readme" {
		t.Fatalf("unexpected contents: %+v", c)
	}

	icon := resourceByURI(t, specs, "file:///icon.png")
	res, err = icon.Handler(context.Background(), readReq("file:///icon.png"))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(res.Contents[0].Blob) != 4 || res.Contents[0].MIMEType != "image/png" {
		t.Fatalf("unexpected blob contents: %+v", res.Contents[0])
	}
}

func TestResourceProvider_URIAndRawInputs(t *testing.T) {
	specs, _, err := NewResourceProvider([]any{workspace{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}

	manifest := resourceByURI(t, specs, "file:///manifest.json")
	res, err := manifest.Handler(context.Background(), readReq("file:///manifest.json"))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if res.Contents[0].URI != "file:///manifest.json" || res.Contents[0].Text != "{}" {
		t.Fatalf("expected the URI to reach the method, got %+v", res.Contents[0])
	}

	mirror := resourceByURI(t, specs, "file:///mirror")
	res, err = mirror.Handler(context.Background(), readReq("file:///mirror"))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if res.Contents[0].Text != "mirrored" {
		t.Fatalf("expected raw passthrough, got %+v", res.Contents[0])
	}
}

func TestResourceProvider_TemplateHandler(t *testing.T) {
	_, templates, err := NewResourceProvider([]any{workspace{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	res, err := templates[0].Handler(context.Background(), readReq("file:///src/main.go"))
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	c := res.Contents[0]
	if c.Text != "contents of file:///src/main.go" {
		t.Fatalf("expected expanded URI to reach the method, got %+v", c)
	}
	if c.MIMEType != "text/plain" {
		t.Fatalf("text contents default to text/plain, got %q", c.MIMEType)
	}
}

type lostResource struct {
	_ annotations.Resource `method:"Find" name:"find"`
}

func (lostResource) Find() string { return "" }

func TestResourceProvider_MissingURI(t *testing.T) {
	_, _, err := NewResourceProvider([]any{lostResource{}}).Specs()
	if !errors.Is(err, ErrBadTag) {
		t.Fatalf("expected ErrBadTag for missing uri, got %v", err)
	}
}

type dupResources struct {
	_ annotations.Resource `method:"One" uri:"file:///same"`
	_ annotations.Resource `method:"Two" uri:"file:///same"`
}

func (dupResources) One() string { return "1" }
func (dupResources) Two() string { return "2" }

func TestResourceProvider_DuplicateURI(t *testing.T) {
	_, _, err := NewResourceProvider([]any{dupResources{}}).Specs()
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

type flakyResource struct {
	_ annotations.Resource `method:"Read" uri:"file:///flaky"`
}

func (flakyResource) Read() (string, error) {
	return "", errors.New("disk on fire")
}

func TestResourceProvider_MethodErrorPropagates(t *testing.T) {
	specs, _, err := NewResourceProvider([]any{flakyResource{}}).Specs()
	if err != nil {
		t.Fatalf("Specs failed: %v", err)
	}
	_, err = specs[0].Handler(context.Background(), readReq("file:///flaky"))
	if err == nil || err.Error() != "disk on fire" {
		t.Fatalf("expected method error to propagate, got %v", err)
	}
}
