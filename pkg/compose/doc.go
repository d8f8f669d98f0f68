// Package compose builds on pkg/template with the composition layer: handles
// that pair a template with an ordered dependency list, an assembler that
// broadcasts bindings across many handles and concatenates their renders, and
// a registry for resolving handles by name.
//
// Composition is flatten-on-bind: SetRef renders the child handle and copies
// the resulting string into the parent, so there is never a live template
// graph and a child cannot be mutated to affect an already-composed parent.
package compose
