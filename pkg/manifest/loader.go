package manifest

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a manifest document from JSON or YAML and validates it.
func Parse(data []byte) (*Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("manifest: document is empty")
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("manifest: parse document: invalid JSON or YAML")
		}
	}

	if err := validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func validate(doc *Document) error {
	if len(doc.Templates) == 0 {
		return fmt.Errorf("manifest: document defines no templates")
	}

	seen := make(map[string]struct{}, len(doc.Templates))
	for i, entry := range doc.Templates {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return fmt.Errorf("manifest: template %d has no name", i)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("manifest: duplicate template %q", name)
		}

		hasContent := entry.Content != ""
		hasSource := strings.TrimSpace(entry.Source) != ""
		if hasContent == hasSource {
			return fmt.Errorf("manifest: template %q needs exactly one of content or source", name)
		}

		// Refs resolve against earlier entries only: composition renders the
		// referenced template at build time, so it must already be complete.
		for placeholder, target := range entry.Refs {
			if strings.TrimSpace(placeholder) == "" {
				return fmt.Errorf("manifest: template %q has a ref with an empty placeholder", name)
			}
			if _, ok := seen[target]; !ok {
				return fmt.Errorf("manifest: template %q ref %q targets unknown or later template %q", name, placeholder, target)
			}
		}

		seen[name] = struct{}{}
	}

	for placeholder, target := range doc.GlobalRefs {
		if strings.TrimSpace(placeholder) == "" {
			return fmt.Errorf("manifest: globalRefs contains an empty placeholder")
		}
		if _, ok := seen[target]; !ok {
			return fmt.Errorf("manifest: globalRefs %q targets unknown template %q", placeholder, target)
		}
	}

	return nil
}
