package manifest

// Document is a parsed assembly manifest. Entry order is meaningful: it is
// both the composition-reference resolution order and the final
// concatenation order of the assembler.
type Document struct {
	// Templates lists the template entries in declaration order.
	Templates []Entry `json:"templates" yaml:"templates"`

	// Globals are broadcast to every non-partial entry that declares the
	// placeholder, after per-entry bindings are applied.
	Globals map[string]string `json:"globals" yaml:"globals"`

	// GlobalRefs broadcast a named entry's rendered output the same way.
	GlobalRefs map[string]string `json:"globalRefs" yaml:"globalRefs"`
}

// Entry describes one template in the manifest.
type Entry struct {
	// Name identifies the entry for refs and CLI selection. Required, unique.
	Name string `json:"name" yaml:"name"`

	// Content carries the template text inline. Exactly one of Content and
	// Source must be set.
	Content string `json:"content" yaml:"content"`

	// Source is a file path or URL to load the template text from.
	Source string `json:"source" yaml:"source"`

	// Dependencies are opaque declarations handed to the runner, in order.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`

	// Bindings are direct placeholder values applied before Refs.
	Bindings map[string]string `json:"bindings" yaml:"bindings"`

	// Refs map placeholders to earlier entry names; the referenced entry is
	// rendered at build time and composed in, absorbing its dependencies.
	Refs map[string]string `json:"refs" yaml:"refs"`

	// Partial entries are registered for refs but not added to the assembler.
	Partial bool `json:"partial" yaml:"partial"`
}
