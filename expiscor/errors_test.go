package expiscor_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
)

func TestErrorFormatting(t *testing.T) {
	e := expiscor.ServerError("collection not found", 404)
	if got := e.Error(); got != "collection not found (code=404)" {
		t.Fatalf("Error() = %q", got)
	}

	cause := errors.New("connection refused")
	w := expiscor.WrapError("list collections", cause)
	if !strings.Contains(w.Error(), "connection refused") {
		t.Fatalf("wrapped Error() = %q, want cause included", w.Error())
	}
	if !errors.Is(w, cause) {
		t.Fatal("errors.Is should see through WrapError")
	}
}

func TestUnsupported(t *testing.T) {
	err := expiscor.Unsupported("commit")
	if !expiscor.IsUnsupported(err) {
		t.Fatal("IsUnsupported should report true for Unsupported")
	}
	if !strings.Contains(err.Error(), "commit") {
		t.Fatalf("Error() = %q, want operation name included", err.Error())
	}

	wrapped := fmt.Errorf("feed: %w", err)
	if !expiscor.IsUnsupported(wrapped) {
		t.Fatal("IsUnsupported should see through wrapping")
	}
	if expiscor.IsUnsupported(expiscor.NewError("other")) {
		t.Fatal("IsUnsupported should be false for ordinary errors")
	}
}

func TestAsError(t *testing.T) {
	inner := expiscor.ServerError("bad request", 400)
	wrapped := fmt.Errorf("post update: %w", inner)

	e, ok := expiscor.AsError(wrapped)
	if !ok || e.Code != 400 {
		t.Fatalf("AsError = %v, %v", e, ok)
	}

	if _, ok := expiscor.AsError(errors.New("plain")); ok {
		t.Fatal("AsError should be false for foreign errors")
	}
}
