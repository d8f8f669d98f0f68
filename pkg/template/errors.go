package template

import (
	"errors"
	"fmt"
)

// MissingPlaceholderError reports a bind against a name the template does not
// declare, or a render attempted while a declared placeholder is still
// unbound. Both conditions carry the offending name.
type MissingPlaceholderError struct {
	Name string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("template: missing placeholder %q", e.Name)
}

// SyntaxError reports content that cannot be parsed into a template. The base
// grammar never produces it (unmatched delimiters are plain text); it exists
// so stricter grammars can fail construction without changing the API.
type SyntaxError struct {
	Detail string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template: invalid syntax: %s", e.Detail)
}

// IsMissingPlaceholder reports whether err is (or wraps) a
// MissingPlaceholderError.
func IsMissingPlaceholder(err error) bool {
	var target *MissingPlaceholderError
	return errors.As(err, &target)
}
