package element

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBase_SetErrorNormalises(t *testing.T) {
	var base Base
	base.SetError("  too many items ")
	base.SetError("")
	base.SetError("too many items")
	base.SetError("too few items")

	want := []string{"too many items", "too few items"}
	if diff := cmp.Diff(want, base.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if !base.HasErrors() {
		t.Fatalf("expected HasErrors to be true")
	}
}

func TestBase_ClearErrors(t *testing.T) {
	var base Base
	base.SetError("boom")
	base.ClearErrors()

	if base.HasErrors() || base.Errors() != nil {
		t.Fatalf("expected errors to be cleared, got %v", base.Errors())
	}
}

func TestBase_ErrorsReturnsCopy(t *testing.T) {
	var base Base
	base.SetError("boom")
	got := base.Errors()
	got[0] = "mutated"

	if base.Errors()[0] != "boom" {
		t.Fatalf("Errors leaked internal slice")
	}
}
