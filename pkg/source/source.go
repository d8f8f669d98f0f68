package source

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// SourceKind enumerates the supported origins of template text.
type SourceKind int

const (
	// SourceKindLiteral carries the template text inline.
	SourceKindLiteral SourceKind = iota
	// SourceKindFile identifies an on-disk file path.
	SourceKindFile
	// SourceKindFS identifies a path within an fs.FS.
	SourceKindFS
	// SourceKindURL identifies an HTTP/HTTPS endpoint.
	SourceKindURL
)

// Source identifies where template text lives.
type Source interface {
	// Location is the path, URL, or inline text depending on Kind.
	Location() string
	Kind() SourceKind
}

// literalSource carries template text directly.
type literalSource struct {
	text string
}

func (s literalSource) Location() string {
	return s.text
}

func (s literalSource) Kind() SourceKind {
	return SourceKindLiteral
}

// FromLiteral returns a Source whose location is the template text itself.
func FromLiteral(text string) Source {
	return literalSource{text: text}
}

// fileSource identifies on-disk template files.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// FromFile returns a Source pointing to a file path.
func FromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// FromFS returns a Source identifying a resource inside an fs.FS.
func FromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references an HTTP/HTTPS endpoint.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// FromURL parses the supplied URL string and returns a Source. It panics if
// the URL is invalid to surface configuration mistakes early.
func FromURL(raw string) Source {
	if raw == "" {
		panic("source: empty URL")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("source: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}
