package compose_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scriptgen/pkg/compose"
	"github.com/goliatone/go-scriptgen/pkg/template"
)

func TestSetGlobal_BroadcastSkipsHandlesWithoutPlaceholder(t *testing.T) {
	withX := mustParse(t, "value: @[x]@")
	withoutX := mustParse(t, "value: @[y]@")

	a := compose.NewAssembler()
	a.Add(withX)
	a.Add(withoutX)

	if err := a.SetGlobal("x", "42"); err != nil {
		t.Fatalf("SetGlobal() error = %v", err)
	}

	rendered, err := withX.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if rendered != "value: 42" {
		t.Fatalf("Render() = %q", rendered)
	}

	// The handle without the placeholder is completely unaffected.
	want := []string{"y"}
	if diff := cmp.Diff(want, withoutX.Template().Unbound()); diff != "" {
		t.Fatalf("untargeted handle mutated (-want +got):\n%s", diff)
	}
}

func TestRenderAll_ConcatenatesInInsertionOrder(t *testing.T) {
	first := mustParse(t, "a")
	second := mustParse(t, "b")

	a := compose.NewAssembler()
	a.Add(first)
	a.Add(second)

	out, err := a.RenderAll()
	if err != nil {
		t.Fatalf("RenderAll() error = %v", err)
	}
	if out != "a\nb\n" {
		t.Fatalf("RenderAll() = %q, want %q", out, "a\nb\n")
	}
}

func TestRenderAll_EmptyAssembler(t *testing.T) {
	out, err := compose.NewAssembler().RenderAll()
	if err != nil {
		t.Fatalf("RenderAll() error = %v", err)
	}
	if out != "" {
		t.Fatalf("RenderAll() = %q, want empty", out)
	}
}

func TestRenderAll_FirstFailureShortCircuits(t *testing.T) {
	failing := mustParse(t, "@[unbound]@")
	ok := mustParse(t, "fine")

	a := compose.NewAssembler()
	a.Add(failing)
	a.Add(ok)

	out, err := a.RenderAll()
	if !template.IsMissingPlaceholder(err) {
		t.Fatalf("RenderAll() error = %v, want MissingPlaceholderError", err)
	}
	if out != "" {
		t.Fatalf("RenderAll() returned partial result %q on failure", out)
	}
}

func TestSetRefGlobal_EachTargetGetsIndependentCopy(t *testing.T) {
	first := mustParse(t, "1: @[slot]@").WithDependency("host1")
	second := mustParse(t, "2: @[slot]@").WithDependency("host2")
	noSlot := mustParse(t, "3: nothing")

	child := mustParse(t, "@[v]@").WithDependency("child-dep")
	if err := child.Set("v", "shared"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	a := compose.NewAssembler()
	a.Add(first)
	a.Add(second)
	a.Add(noSlot)

	if err := a.SetRefGlobal("slot", child); err != nil {
		t.Fatalf("SetRefGlobal() error = %v", err)
	}

	out, err := a.RenderAll()
	if err != nil {
		t.Fatalf("RenderAll() error = %v", err)
	}
	if out != "1: shared\n2: shared\n3: nothing\n" {
		t.Fatalf("RenderAll() = %q", out)
	}

	// Each target absorbed its own copy of the child's dependencies, host
	// entries first.
	if diff := cmp.Diff([]string{"host1", "child-dep"}, first.Dependencies()); diff != "" {
		t.Fatalf("first handle dependencies (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"host2", "child-dep"}, second.Dependencies()); diff != "" {
		t.Fatalf("second handle dependencies (-want +got):\n%s", diff)
	}

	// The composed-in child itself is untouched.
	if diff := cmp.Diff([]string{"child-dep"}, child.Dependencies()); diff != "" {
		t.Fatalf("child dependencies mutated (-want +got):\n%s", diff)
	}
}

func TestSetRefGlobal_IncompleteChildFails(t *testing.T) {
	host := mustParse(t, "@[slot]@")
	child := mustParse(t, "@[unbound]@")

	a := compose.NewAssembler()
	a.Add(host)

	if err := a.SetRefGlobal("slot", child); !template.IsMissingPlaceholder(err) {
		t.Fatalf("SetRefGlobal() error = %v, want MissingPlaceholderError", err)
	}
}
