// Package template implements the placeholder data model at the bottom of the
// scriptgen pipeline: raw text containing @[name]@ markers, a closed-world
// binding table derived from that text, and substitution-only rendering.
// Composition and aggregation live in pkg/compose.
package template
