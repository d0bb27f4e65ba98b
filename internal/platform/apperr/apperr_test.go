package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindAuthentication, http.StatusUnauthorized},
		{KindAuthorization, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.kind); got != tc.want {
			t.Errorf("HTTPStatus(%d) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("booking: %w", Conflict("this time slot is already booked"))
	if KindOf(err) != KindConflict {
		t.Errorf("expected KindConflict through wrapping, got %d", KindOf(err))
	}
	if !IsKind(err, KindConflict) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}
}

func TestKindOf_Unclassified(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Error("unclassified errors should map to KindInternal")
	}
}

func TestMessage_InternalIsOpaque(t *testing.T) {
	err := Internal("query failed", errors.New("pq: connection refused"))
	if Message(err) != "internal server error" {
		t.Errorf("internal detail leaked: %q", Message(err))
	}
	if err.Error() == "internal server error" {
		t.Error("server-side error string should keep the cause")
	}
}

func TestMessage_ClientKindsKeepText(t *testing.T) {
	if got := Message(NotFound("doctor not found")); got != "doctor not found" {
		t.Errorf("Message = %q", got)
	}
}
