// Package scriptgen assembles runnable scripts from placeholder templates.
// Text containing @[name]@ markers parses into templates; values or the
// rendered output of other templates bind to the placeholders; an assembler
// aggregates many templates with broadcast binding; and a runner hands the
// result to an external script interpreter together with an ordered
// dependency manifest.
//
// The root package re-exports the public types and offers convenience entry
// points; the engine lives in pkg/template, pkg/compose, and friends.
package scriptgen

import (
	"context"
	"fmt"

	internalsource "github.com/goliatone/go-scriptgen/internal/source"
	"github.com/goliatone/go-scriptgen/pkg/compose"
	"github.com/goliatone/go-scriptgen/pkg/manifest"
	"github.com/goliatone/go-scriptgen/pkg/source"
	"github.com/goliatone/go-scriptgen/pkg/template"
)

// Template is the placeholder-bearing text unit; see pkg/template.
type Template = template.Template

// Handle pairs a template with dependency declarations; see pkg/compose.
type Handle = compose.Handle

// Assembler aggregates handles with broadcast binding; see pkg/compose.
type Assembler = compose.Assembler

// Registry resolves handles by name; see pkg/compose.
type Registry = compose.Registry

// NewLoader constructs the built-in source loader, keeping internal/source
// hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return internalsource.New(source.NewLoaderOptions(options...))
}

// ParseSource loads template text from src and parses it into a Template.
func ParseSource(ctx context.Context, loader source.Loader, src source.Source) (*Template, error) {
	if loader == nil {
		loader = NewLoader()
	}
	text, err := loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("scriptgen: load template text: %w", err)
	}
	return template.New(text)
}

// RenderManifest loads an assembly manifest from src, builds it, and returns
// the concatenated render of every non-partial template. It is the simplest
// entry point for callers that just want the assembled output.
func RenderManifest(ctx context.Context, src source.Source, options ...source.LoaderOption) (string, error) {
	loader := NewLoader(options...)

	raw, err := loader.Load(ctx, src)
	if err != nil {
		return "", fmt.Errorf("scriptgen: load manifest: %w", err)
	}

	doc, err := manifest.Parse([]byte(raw))
	if err != nil {
		return "", err
	}

	assembler, _, err := manifest.Build(ctx, doc, loader)
	if err != nil {
		return "", err
	}

	return assembler.RenderAll()
}
