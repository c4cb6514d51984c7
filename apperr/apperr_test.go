package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{InvalidTransition("no path"), http.StatusBadRequest},
		{InvalidState("wrong state"), http.StatusBadRequest},
		{NotAvailable("busy"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	inner := Conflict("taken")
	wrapped := fmt.Errorf("creating vehicle: %w", inner)
	if HTTPStatus(wrapped) != http.StatusConflict {
		t.Error("wrapped conflict lost its status")
	}
	if !IsKind(wrapped, KindConflict) {
		t.Error("IsKind must see through wrapping")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Internal("query failed", errors.New("connection reset"))
	if err.Error() != "query failed: connection reset" {
		t.Errorf("message = %q", err.Error())
	}
	if !errors.Is(err, err.Err) {
		t.Error("Unwrap must expose the cause")
	}
}
