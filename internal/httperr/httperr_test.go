package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Unauthorized("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{InvalidInput("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Internal("x"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.err.Kind, got, tc.want)
		}
	}
}

func TestFromClassifiesUnknownAsInternal(t *testing.T) {
	appErr := From(errors.New("driver exploded"))
	if appErr.Kind != KindInternal {
		t.Fatalf("kind = %q, want internal", appErr.Kind)
	}
	if appErr.Message == "driver exploded" {
		t.Fatal("internal detail leaked into client message")
	}
}

func TestFromUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", Conflict("busy"))
	appErr := From(wrapped)
	if appErr.Kind != KindConflict {
		t.Fatalf("kind = %q, want conflict", appErr.Kind)
	}
}

func TestIsKind(t *testing.T) {
	err := NotFound("gone")
	if !IsKind(err, KindNotFound) {
		t.Fatal("IsKind missed a direct match")
	}
	if IsKind(err, KindConflict) {
		t.Fatal("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindInternal) {
		t.Fatal("IsKind matched a plain error")
	}
}
