package template

import (
	"regexp"
	"sort"
	"strings"
)

// markerPattern matches a placeholder marker: the literal open delimiter @[,
// one or more characters other than ], and the literal close delimiter ]@.
// The captured group is the raw (untrimmed) placeholder name.
var markerPattern = regexp.MustCompile(`@\[([^\]]+)\]@`)

// Template owns a piece of raw text and the set of placeholder names that
// text declares. The key set is fixed at construction; binding only changes
// values. An empty-string value means the placeholder is unbound, so a
// template with every value non-empty is ready to render.
type Template struct {
	content      string
	placeholders map[string]string
}

// New scans content for placeholder markers and returns a Template declaring
// every distinct trimmed name found. Content without markers is valid.
// Unmatched delimiter sequences are treated as plain text. The error return
// is reserved for stricter grammars and is currently always nil.
func New(content string) (*Template, error) {
	placeholders := make(map[string]string)
	for _, match := range markerPattern.FindAllStringSubmatch(content, -1) {
		name := strings.TrimSpace(match[1])
		placeholders[name] = ""
	}
	return &Template{
		content:      content,
		placeholders: placeholders,
	}, nil
}

// Content returns the raw template text.
func (t *Template) Content() string {
	return t.content
}

// Placeholders returns the declared placeholder names in sorted order.
func (t *Template) Placeholders() []string {
	names := make([]string, 0, len(t.placeholders))
	for name := range t.placeholders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the template declares the named placeholder.
func (t *Template) Has(name string) bool {
	_, ok := t.placeholders[name]
	return ok
}

// Unbound returns the declared names still holding the empty-string sentinel,
// in sorted order. An empty result means Render will succeed.
func (t *Template) Unbound() []string {
	var names []string
	for name, value := range t.placeholders {
		if value == "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Set binds value to the named placeholder. Names the template does not
// declare are rejected with a MissingPlaceholderError and nothing is mutated;
// rebinding an already-bound placeholder overwrites the previous value.
func (t *Template) Set(name, value string) error {
	if _, ok := t.placeholders[name]; !ok {
		return &MissingPlaceholderError{Name: name}
	}
	t.placeholders[name] = value
	return nil
}

// Render substitutes every bound placeholder into a copy of the content and
// returns it. Placeholders are processed in sorted name order; the first one
// still unbound aborts the render with a MissingPlaceholderError. Render has
// no side effect on the template and may be called repeatedly.
func (t *Template) Render() (string, error) {
	result := t.content
	for _, name := range t.Placeholders() {
		value := t.placeholders[name]
		if value == "" {
			return "", &MissingPlaceholderError{Name: name}
		}
		result = strings.ReplaceAll(result, "@["+name+"]@", value)
	}
	return result, nil
}

// Clone returns an independent deep copy carrying the same content and
// current bindings.
func (t *Template) Clone() *Template {
	placeholders := make(map[string]string, len(t.placeholders))
	for name, value := range t.placeholders {
		placeholders[name] = value
	}
	return &Template{
		content:      t.content,
		placeholders: placeholders,
	}
}
