package errs_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/krisalay/league-cache/internal/errs"
)

var errSentinel = errors.New("sentinel")

func TestWrapNil(t *testing.T) {
	if errs.Wrap(nil, "ctx") != nil || errs.Wrapf(nil, "ctx %d", 1) != nil || errs.Join(errSentinel, nil) != nil {
		t.Fatalf("wrapping nil must return nil")
	}
}

func TestJoinMatchesBoth(t *testing.T) {
	err := errs.Join(errSentinel, io.ErrUnexpectedEOF)
	if !errors.Is(err, errSentinel) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("Join() lost a chain member: %v", err)
	}
}

func TestLoggableCauses(t *testing.T) {
	err := errs.Wrapf(errs.Wrap(io.EOF, "read"), "load %s", "standings")

	attrs := errs.Loggable(err).LogValue().Group()
	if len(attrs) != 2 || attrs[1].Key != "causes" {
		t.Fatalf("attrs = %v, want message and causes", attrs)
	}
	want := []string{"read: EOF", "EOF"}
	if diff := cmp.Diff(want, attrs[1].Value.Any()); diff != "" {
		t.Fatalf("causes (-want +got):\n%s", diff)
	}
}

func TestWithStackOnce(t *testing.T) {
	err := errs.WithStack(io.EOF)
	again := errs.WithStack(errs.Wrap(err, "outer"))

	var se *errs.StackError
	if !errors.As(again, &se) || len(se.Stack()) == 0 {
		t.Fatalf("expected stack in chain")
	}
	if !errors.Is(again, io.EOF) {
		t.Fatalf("stack wrapper broke errors.Is")
	}
}

func TestLoggable(t *testing.T) {
	v := errs.Loggable(errs.Wrap(io.EOF, "read")).LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}
	if got := v.Group()[0].Value.String(); got != "read: EOF" {
		t.Fatalf("message = %q", got)
	}
	if len(errs.Loggable(nil).LogValue().Group()) != 0 {
		t.Fatalf("nil error should log an empty group")
	}
}
