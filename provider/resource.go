package provider

import (
	"context"
	"fmt"
	"reflect"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spring-ai-community/mcp-annotations-go/annotations"
)

var (
	resourceMarker = reflect.TypeOf(annotations.Resource{})
	templateMarker = reflect.TypeOf(annotations.ResourceTemplate{})
	readResReq     = reflect.TypeOf((*mcp.ReadResourceRequest)(nil))
	readResRes     = reflect.TypeOf((*mcp.ReadResourceResult)(nil))
	resContents    = reflect.TypeOf([]*mcp.ResourceContents(nil))
	bytesType      = reflect.TypeOf([]byte(nil))
)

// ResourceProvider adapts methods marked with annotations.Resource or
// annotations.ResourceTemplate into resource specifications. Both marker
// kinds share their method shapes; the marker decides whether the uri tag
// is a concrete URI or a RFC 6570 template.
//
// Accepted inputs, after an optional leading context.Context: none, the
// requested URI as a string, or *mcp.ReadResourceRequest. Accepted
// outputs: *mcp.ReadResourceResult, []*mcp.ResourceContents, string, or
// []byte, each optionally paired with error. String and byte outputs are
// wrapped in a single contents entry carrying the requested URI and the
// declared MIME type.
type ResourceProvider struct {
	objects []any
	opts    options
}

// NewResourceProvider returns a provider scanning the given candidate
// values.
func NewResourceProvider(objects []any, opts ...Option) *ResourceProvider {
	return &ResourceProvider{objects: objects, opts: buildOptions(opts)}
}

// Specs scans the candidates and returns the resource and
// resource-template specifications declared on them.
func (p *ResourceProvider) Specs() ([]ResourceSpec, []ResourceTemplateSpec, error) {
	resources, err := p.scan(resourceMarker, "resource")
	if err != nil {
		return nil, nil, err
	}
	templates, err := p.scan(templateMarker, "resource template")
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]bool)
	var specs []ResourceSpec
	for _, a := range resources {
		if seen[a.cfg.URI] {
			return nil, nil, fmt.Errorf("resource %q: %w", a.cfg.URI, ErrDuplicateName)
		}
		seen[a.cfg.URI] = true
		specs = append(specs, ResourceSpec{
			Clients: a.cfg.Clients,
			Resource: &mcp.Resource{
				URI:         a.cfg.URI,
				Name:        a.name,
				Title:       a.cfg.Title,
				Description: a.cfg.Description,
				MIMEType:    a.cfg.MIMEType,
				Annotations: resourceAnnotations(a.cfg),
			},
			Handler: a.handler,
		})
	}

	seen = make(map[string]bool)
	var tmplSpecs []ResourceTemplateSpec
	for _, a := range templates {
		if seen[a.cfg.URI] {
			return nil, nil, fmt.Errorf("resource template %q: %w", a.cfg.URI, ErrDuplicateName)
		}
		seen[a.cfg.URI] = true
		tmplSpecs = append(tmplSpecs, ResourceTemplateSpec{
			Clients: a.cfg.Clients,
			Template: &mcp.ResourceTemplate{
				URITemplate: a.cfg.URI,
				Name:        a.name,
				Title:       a.cfg.Title,
				Description: a.cfg.Description,
				MIMEType:    a.cfg.MIMEType,
				Annotations: resourceAnnotations(a.cfg),
			},
			Handler: a.handler,
		})
	}

	return specs, tmplSpecs, nil
}

type adaptedResource struct {
	cfg     annotations.Config
	name    string
	handler mcp.ResourceHandler
}

func (p *ResourceProvider) scan(marker reflect.Type, kind string) ([]adaptedResource, error) {
	decls, err := scanMarkers(p.objects, marker)
	if err != nil {
		return nil, err
	}
	var adapted []adaptedResource
	for _, d := range decls {
		if d.cfg.URI == "" {
			return nil, fmt.Errorf("%s on %s method %q: %w: missing uri", kind, d.owner, d.cfg.Method, ErrBadTag)
		}
		handler, ok := p.adapt(d)
		if !ok {
			skip(p.opts.log, kind, d)
			continue
		}
		name := d.cfg.Name
		if name == "" {
			name = defaultName(d.cfg.Method)
		}
		adapted = append(adapted, adaptedResource{cfg: d.cfg, name: name, handler: handler})
	}
	return adapted, nil
}

func (p *ResourceProvider) adapt(d decl) (mcp.ResourceHandler, bool) {
	ft := d.fn.Type()
	wantsCtx, ins, ok := splitInputs(ft)
	if !ok {
		return nil, false
	}
	out, hasErr, ok := splitOutputs(ft)
	if !ok || out == nil {
		return nil, false
	}
	switch out {
	case readResRes, resContents, stringType, bytesType:
	default:
		return nil, false
	}

	const (
		inNone = iota
		inURI
		inRaw
	)
	mode := inNone
	switch len(ins) {
	case 0:
	case 1:
		switch ins[0] {
		case stringType:
			mode = inURI
		case readResReq:
			mode = inRaw
		default:
			return nil, false
		}
	default:
		return nil, false
	}

	mimeType := d.cfg.MIMEType
	fn := d.fn
	handler := func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		var args []reflect.Value
		switch mode {
		case inURI:
			args = []reflect.Value{reflect.ValueOf(req.Params.URI)}
		case inRaw:
			args = []reflect.Value{reflect.ValueOf(req)}
		}
		outs, err := call(ctx, fn, wantsCtx, args)
		if err != nil {
			return nil, err
		}
		if err := callErr(outs, hasErr); err != nil {
			return nil, err
		}
		switch out {
		case readResRes:
			res, _ := outs[0].Interface().(*mcp.ReadResourceResult)
			return res, nil
		case resContents:
			contents, _ := outs[0].Interface().([]*mcp.ResourceContents)
			return &mcp.ReadResourceResult{Contents: contents}, nil
		case stringType:
			text, _ := outs[0].Interface().(string)
			return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: orText(mimeType),
				Text:     text,
			}}}, nil
		default:
			blob, _ := outs[0].Interface().([]byte)
			return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: mimeType,
				Blob:     blob,
			}}}, nil
		}
	}
	return handler, true
}

func resourceAnnotations(cfg annotations.Config) *mcp.Annotations {
	if len(cfg.Audience) == 0 && cfg.Priority == nil {
		return nil
	}
	a := &mcp.Annotations{}
	for _, role := range cfg.Audience {
		a.Audience = append(a.Audience, mcp.Role(role))
	}
	if cfg.Priority != nil {
		a.Priority = *cfg.Priority
	}
	return a
}

func orText(mimeType string) string {
	if mimeType == "" {
		return "text/plain"
	}
	return mimeType
}
