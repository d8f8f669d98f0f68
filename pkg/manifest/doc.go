// Package manifest loads declarative assembly documents: an ordered list of
// template entries with their bindings, composition references, and
// dependency declarations, plus document-level global bindings. Documents are
// written in YAML or JSON and build into a compose.Assembler plus a
// compose.Registry of every named entry.
package manifest
