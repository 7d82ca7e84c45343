package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	if meta := MetadataFor(CodeValidation); meta.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400 for validation, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(CodeNotFound); meta.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404 for not found, got %d", meta.HTTPStatus)
	}
	if meta := MetadataFor(Code("BOGUS")); meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes must map to 500, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("boom")
	err := Wrap(CodeDependency, cause, "gateway call failed")

	if err.Unwrap() != cause {
		t.Fatalf("expected cause to be preserved")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotFound, "product not found")
	outer := fmt.Errorf("loading product: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected NOT_FOUND through wrapping, got %v", typed)
	}
	if !IsNotFound(outer) {
		t.Fatal("IsNotFound should see through wrapping")
	}
	if IsNotFound(fmt.Errorf("plain")) {
		t.Fatal("plain errors are not NOT_FOUND")
	}
}
