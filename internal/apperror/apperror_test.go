package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Accessors(t *testing.T) {
	e := New(NotFound, "Start date 2017-05-07 is not found in calendar.")
	if e.Error() != "Start date 2017-05-07 is not found in calendar." {
		t.Fatalf("unexpected Error(): %q", e.Error())
	}
	if e.Message() != e.Error() {
		t.Fatalf("Message() and Error() differ")
	}
	if e.Code() != NotFound {
		t.Fatalf("code=%s", e.Code())
	}

	f := Newf(InvalidArgument, "Chunk size %d must be a positive integer.", -3)
	if f.Error() != "Chunk size -3 must be a positive integer." {
		t.Fatalf("unexpected Newf message: %q", f.Error())
	}
}

func TestAppError_HTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{NotFound, http.StatusNotFound},
		{UnknownMarket, http.StatusNotFound},
		{InvalidRange, http.StatusBadRequest},
		{InvalidArgument, http.StatusBadRequest},
		{OutOfRange, http.StatusUnprocessableEntity},
		{Internal, http.StatusInternalServerError},
		{Code("SOMETHING"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := New(tc.code, "x").HTTPStatus(); got != tc.want {
			t.Fatalf("%s: want %d got %d", tc.code, tc.want, got)
		}
	}
}

func TestCodeOfAndIs(t *testing.T) {
	wrapped := fmt.Errorf("chunks: %w", New(InvalidRange, "bad"))
	if CodeOf(wrapped) != InvalidRange {
		t.Fatalf("CodeOf(wrapped)=%s", CodeOf(wrapped))
	}
	if !Is(wrapped, InvalidRange) || Is(wrapped, NotFound) {
		t.Fatalf("Is mismatch for wrapped error")
	}
	if CodeOf(errors.New("plain")) != Internal {
		t.Fatalf("plain errors should map to Internal")
	}
	if CodeOf(nil) != "" || Is(nil, Internal) {
		t.Fatalf("nil error must have no code")
	}
}
