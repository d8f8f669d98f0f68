package prompt

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-scriptgen/pkg/compose"
)

// nonEmpty rejects empty answers: the engine treats the empty string as the
// unbound sentinel, so accepting one would leave the placeholder unbound.
func nonEmpty(answer string) error {
	if answer == "" {
		return fmt.Errorf("a value is required")
	}
	return nil
}

// Fill prompts for every unbound placeholder on the handle in sorted order
// and binds the answers. Already-bound placeholders are not prompted.
func Fill(ctx context.Context, d Driver, h *compose.Handle) error {
	for _, name := range h.Template().Unbound() {
		answer, err := d.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("Value for placeholder %q:", name),
			Validator: nonEmpty,
		})
		if err != nil {
			return err
		}
		if err := h.Set(name, answer); err != nil {
			return err
		}
	}
	return nil
}

// FillAll prompts once for each distinct unbound placeholder name across the
// assembler and broadcasts the answer with SetGlobal, so templates sharing a
// name receive the same value.
func FillAll(ctx context.Context, d Driver, a *compose.Assembler) error {
	seen := make(map[string]struct{})
	var names []string
	for _, h := range a.Handles() {
		for _, name := range h.Template().Unbound() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		answer, err := d.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("Value for placeholder %q:", name),
			Validator: nonEmpty,
		})
		if err != nil {
			return err
		}
		if err := a.SetGlobal(name, answer); err != nil {
			return err
		}
	}
	return nil
}
