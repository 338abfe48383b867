package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	err := &OpError{
		Op:   "geometry.normalize",
		Kind: KindTooFewPoints,
		Path: "input/naca0012.dat",
		Err:  ErrTooFewPoints,
	}

	if !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("expected errors.Is to match sentinel")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindTooFewPoints {
		t.Fatalf("expected kind %s", KindTooFewPoints)
	}
	if !strings.Contains(err.Error(), "path=input/naca0012.dat") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestIsKind(t *testing.T) {
	err := &OpError{Op: "pareto.select", Kind: KindNoMatch, Err: ErrNoMatch}

	if !IsKind(err, KindNoMatch) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(err, KindEmptyFront) {
		t.Fatalf("expected no_match to be distinct from empty_front")
	}
	if IsKind(errors.New("plain"), KindNoMatch) {
		t.Fatalf("expected plain error not to match")
	}
}

func TestNilOpError(t *testing.T) {
	var err *OpError
	if err.Error() != "<nil>" {
		t.Fatalf("unexpected nil message %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}
