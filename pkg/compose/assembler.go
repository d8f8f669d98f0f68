package compose

import (
	"fmt"
	"strings"
)

// Assembler owns an ordered collection of handles. Insertion order is
// semantically meaningful: it is the concatenation order of RenderAll and the
// visit order of the global binders.
type Assembler struct {
	handles []*Handle
}

// NewAssembler returns an assembler with an empty handle list.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Add appends a handle to the end of the list. Ownership transfers to the
// assembler; callers should not keep mutating the handle directly.
func (a *Assembler) Add(h *Handle) {
	a.handles = append(a.handles, h)
}

// Len returns the number of handles added so far.
func (a *Assembler) Len() int {
	return len(a.handles)
}

// Handles returns a copy of the handle list in insertion order.
func (a *Assembler) Handles() []*Handle {
	out := make([]*Handle, len(a.handles))
	copy(out, a.handles)
	return out
}

// SetGlobal binds value to the named placeholder on every handle that
// declares it. Handles without the placeholder are skipped silently: this is
// a best-effort broadcast, unlike the closed-world Handle.Set. A failure from
// an underlying bind is still surfaced.
func (a *Assembler) SetGlobal(name, value string) error {
	for _, h := range a.handles {
		if !h.Template().Has(name) {
			continue
		}
		if err := h.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

// SetRefGlobal composes other into every handle that declares the named
// placeholder, with the same skip-if-absent policy as SetGlobal. Each
// eligible handle composes an independent clone of other, so targets never
// share the rendered output or the absorbed dependency list.
func (a *Assembler) SetRefGlobal(name string, other *Handle) error {
	for _, h := range a.handles {
		if !h.Template().Has(name) {
			continue
		}
		if err := h.SetRef(name, other.Clone()); err != nil {
			return err
		}
	}
	return nil
}

// RenderAll renders every handle in insertion order and concatenates the
// results, each followed by a single newline. The first render failure aborts
// the aggregation and no partial result is returned.
func (a *Assembler) RenderAll() (string, error) {
	var out strings.Builder
	for i, h := range a.handles {
		rendered, err := h.Render()
		if err != nil {
			return "", fmt.Errorf("compose: render template %d: %w", i, err)
		}
		out.WriteString(rendered)
		out.WriteByte('\n')
	}
	return out.String(), nil
}
