package manifest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-scriptgen/pkg/compose"
	"github.com/goliatone/go-scriptgen/pkg/source"
)

// Build turns a validated document into an assembler and a registry holding
// every entry by name. Entries are processed in declaration order: text is
// loaded, dependencies declared, direct bindings applied, then refs composed
// from the already-built entries. Globals are broadcast last. Bindings, refs,
// and globals are each applied in sorted key order so failures are
// deterministic.
func Build(ctx context.Context, doc *Document, loader source.Loader) (*compose.Assembler, *compose.Registry, error) {
	if doc == nil {
		return nil, nil, fmt.Errorf("manifest: document is nil")
	}
	if loader == nil {
		return nil, nil, fmt.Errorf("manifest: loader is nil")
	}

	assembler := compose.NewAssembler()
	registry := compose.NewRegistry()

	for _, entry := range doc.Templates {
		name := strings.TrimSpace(entry.Name)

		text, err := resolveText(ctx, entry, loader)
		if err != nil {
			return nil, nil, err
		}

		handle, err := compose.Parse(text)
		if err != nil {
			return nil, nil, fmt.Errorf("manifest: template %q: %w", name, err)
		}
		for _, dep := range entry.Dependencies {
			handle.WithDependency(dep)
		}

		for _, placeholder := range sortedKeys(entry.Bindings) {
			if err := handle.Set(placeholder, entry.Bindings[placeholder]); err != nil {
				return nil, nil, fmt.Errorf("manifest: template %q: bind %q: %w", name, placeholder, err)
			}
		}

		for _, placeholder := range sortedKeys(entry.Refs) {
			target := entry.Refs[placeholder]
			child, err := registry.Get(target)
			if err != nil {
				return nil, nil, fmt.Errorf("manifest: template %q: ref %q: %w", name, placeholder, err)
			}
			if err := handle.SetRef(placeholder, child.Clone()); err != nil {
				return nil, nil, fmt.Errorf("manifest: template %q: ref %q: %w", name, placeholder, err)
			}
		}

		if err := registry.Register(name, handle); err != nil {
			return nil, nil, fmt.Errorf("manifest: template %q: %w", name, err)
		}
		if !entry.Partial {
			assembler.Add(handle)
		}
	}

	for _, placeholder := range sortedKeys(doc.Globals) {
		if err := assembler.SetGlobal(placeholder, doc.Globals[placeholder]); err != nil {
			return nil, nil, fmt.Errorf("manifest: global %q: %w", placeholder, err)
		}
	}

	for _, placeholder := range sortedKeys(doc.GlobalRefs) {
		child, err := registry.Get(doc.GlobalRefs[placeholder])
		if err != nil {
			return nil, nil, fmt.Errorf("manifest: globalRefs %q: %w", placeholder, err)
		}
		if err := assembler.SetRefGlobal(placeholder, child); err != nil {
			return nil, nil, fmt.Errorf("manifest: globalRefs %q: %w", placeholder, err)
		}
	}

	return assembler, registry, nil
}

func resolveText(ctx context.Context, entry Entry, loader source.Loader) (string, error) {
	name := strings.TrimSpace(entry.Name)
	if entry.Content != "" {
		return entry.Content, nil
	}

	src := parseSource(entry.Source)
	text, err := loader.Load(ctx, src)
	if err != nil {
		return "", fmt.Errorf("manifest: template %q: load %s: %w", name, entry.Source, err)
	}
	return text, nil
}

func parseSource(raw string) source.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return source.FromURL(path)
	}
	return source.FromFile(path)
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
