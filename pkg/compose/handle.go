package compose

import (
	"fmt"

	"github.com/goliatone/go-scriptgen/pkg/template"
)

// Handle pairs a template with an ordered list of dependency declarations.
// The dependency strings are opaque to the composition engine; pkg/runner
// turns them into a manifest preamble when the rendered output is executed.
// A handle exclusively owns its template.
type Handle struct {
	tmpl *template.Template
	deps []string
}

// New wraps the given template with an empty dependency list.
func New(tmpl *template.Template) *Handle {
	return &Handle{tmpl: tmpl}
}

// Parse is shorthand for template.New followed by New.
func Parse(content string) (*Handle, error) {
	tmpl, err := template.New(content)
	if err != nil {
		return nil, fmt.Errorf("compose: parse template: %w", err)
	}
	return New(tmpl), nil
}

// WithDependency appends a dependency declaration and returns the handle so
// declarations can be chained. Call order is preserved.
func (h *Handle) WithDependency(dep string) *Handle {
	h.deps = append(h.deps, dep)
	return h
}

// Template returns the wrapped template.
func (h *Handle) Template() *template.Template {
	return h.tmpl
}

// Dependencies returns a copy of the dependency list in declaration order.
func (h *Handle) Dependencies() []string {
	if len(h.deps) == 0 {
		return nil
	}
	out := make([]string, len(h.deps))
	copy(out, h.deps)
	return out
}

// Set binds value to the named placeholder on the wrapped template.
func (h *Handle) Set(name, value string) error {
	return h.tmpl.Set(name, value)
}

// SetRef composes other into this handle: other is rendered fully, the
// rendered string is bound to the named placeholder here, and other's
// dependencies are appended after this handle's existing ones. A render
// failure in other, or a name this handle does not declare, fails the call
// before any state changes.
func (h *Handle) SetRef(name string, other *Handle) error {
	rendered, err := other.Render()
	if err != nil {
		return fmt.Errorf("compose: render %q referent: %w", name, err)
	}
	if err := h.tmpl.Set(name, rendered); err != nil {
		return err
	}
	h.deps = append(h.deps, other.deps...)
	return nil
}

// Render delegates to the wrapped template.
func (h *Handle) Render() (string, error) {
	return h.tmpl.Render()
}

// Clone returns an independent deep copy of the handle, its template state,
// and its dependency list.
func (h *Handle) Clone() *Handle {
	clone := &Handle{tmpl: h.tmpl.Clone()}
	if len(h.deps) > 0 {
		clone.deps = make([]string, len(h.deps))
		copy(clone.deps, h.deps)
	}
	return clone
}
