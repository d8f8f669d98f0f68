package compose_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scriptgen/pkg/compose"
	"github.com/goliatone/go-scriptgen/pkg/template"
)

func mustParse(t *testing.T, content string) *compose.Handle {
	t.Helper()
	h, err := compose.Parse(content)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", content, err)
	}
	return h
}

func TestSetRef_FlattensChildIntoParent(t *testing.T) {
	parent := mustParse(t, "fn @[name]@() {\n    @[body]@\n}")
	child := mustParse(t, "println(\"@[message]@\");")

	if err := child.Set("message", "hi"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := parent.Set("name", "greet"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := parent.SetRef("body", child); err != nil {
		t.Fatalf("SetRef() error = %v", err)
	}

	rendered, err := parent.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "fn greet()") {
		t.Fatalf("Render() = %q, missing function signature", rendered)
	}
	if !strings.Contains(rendered, "println(\"hi\");") {
		t.Fatalf("Render() = %q, missing composed body", rendered)
	}
	if strings.Contains(rendered, "@[") {
		t.Fatalf("Render() left residual markers: %q", rendered)
	}
}

func TestSetRef_NestedComposition(t *testing.T) {
	outer := mustParse(t, "mod demo {\n    @[function]@\n}")
	inner := mustParse(t, "fn helper() {\n    @[body]@\n}")
	leaf := mustParse(t, "println(\"@[message]@\");")

	if err := leaf.Set("message", "nested"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := inner.SetRef("body", leaf); err != nil {
		t.Fatalf("SetRef() error = %v", err)
	}
	if err := outer.SetRef("function", inner); err != nil {
		t.Fatalf("SetRef() error = %v", err)
	}

	rendered, err := outer.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"mod demo {", "fn helper()", "println(\"nested\");"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("Render() = %q, missing %q", rendered, want)
		}
	}
}

func TestSetRef_ChildIsFlattenedNotLive(t *testing.T) {
	parent := mustParse(t, "-> @[slot]@")
	child := mustParse(t, "@[v]@")

	if err := child.Set("v", "before"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := parent.SetRef("slot", child); err != nil {
		t.Fatalf("SetRef() error = %v", err)
	}

	// Mutating the child after composition must not affect the parent.
	if err := child.Set("v", "after"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	rendered, err := parent.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if rendered != "-> before" {
		t.Fatalf("Render() = %q, want %q", rendered, "-> before")
	}
}

func TestSetRef_DependencyMergeOrder(t *testing.T) {
	a := mustParse(t, "@[slot]@").WithDependency("d2")
	b := mustParse(t, "content").WithDependency("d1")

	if err := a.SetRef("slot", b); err != nil {
		t.Fatalf("SetRef() error = %v", err)
	}

	want := []string{"d2", "d1"}
	if diff := cmp.Diff(want, a.Dependencies()); diff != "" {
		t.Fatalf("dependency order mismatch (-want +got):\n%s", diff)
	}
}

func TestSetRef_IncompleteChildFails(t *testing.T) {
	parent := mustParse(t, "@[slot]@")
	child := mustParse(t, "@[unbound]@")
	child.WithDependency("d1")

	err := parent.SetRef("slot", child)
	if !template.IsMissingPlaceholder(err) {
		t.Fatalf("SetRef() error = %v, want MissingPlaceholderError", err)
	}

	// The failed composition must not absorb the child's dependencies.
	if deps := parent.Dependencies(); deps != nil {
		t.Fatalf("Dependencies() = %v, want none", deps)
	}
}

func TestSetRef_UndeclaredPlaceholderFails(t *testing.T) {
	parent := mustParse(t, "no placeholders")
	child := mustParse(t, "text")
	child.WithDependency("d1")

	err := parent.SetRef("missing", child)
	if !template.IsMissingPlaceholder(err) {
		t.Fatalf("SetRef() error = %v, want MissingPlaceholderError", err)
	}
	if deps := parent.Dependencies(); deps != nil {
		t.Fatalf("Dependencies() = %v, want none", deps)
	}
}

func TestWithDependency_PreservesCallOrder(t *testing.T) {
	h := mustParse(t, "x").
		WithDependency("first").
		WithDependency("second").
		WithDependency("third")

	want := []string{"first", "second", "third"}
	if diff := cmp.Diff(want, h.Dependencies()); diff != "" {
		t.Fatalf("dependency order mismatch (-want +got):\n%s", diff)
	}
}

func TestClone_IndependentState(t *testing.T) {
	h := mustParse(t, "@[v]@").WithDependency("d1")
	clone := h.Clone()

	if err := clone.Set("v", "clone"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	clone.WithDependency("d2")

	if got := h.Template().Unbound(); len(got) != 1 {
		t.Fatalf("original bindings mutated through clone: unbound = %v", got)
	}
	want := []string{"d1"}
	if diff := cmp.Diff(want, h.Dependencies()); diff != "" {
		t.Fatalf("original dependencies mutated through clone (-want +got):\n%s", diff)
	}
}
