// Package store persists reusable template snippets in SQLite: the raw
// template text plus its ordered dependency declarations, keyed by name.
// Snippets load back as compose handles ready for binding and composition.
package store
