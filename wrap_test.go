package fixtures

import (
	"errors"
	"testing"
)

func TestWrapInstallsAndRestores(t *testing.T) {
	target := newApp()
	register(t, "pkg.mod", target)

	var seen []any
	wrapped := Wrap(func(installed ...any) error {
		seen = append(seen, installed...)
		if got := target.Settings["key"]; got != "wrapped" {
			t.Fatalf("expected replacement active inside the call, got %v", got)
		}
		if target.X.N != 1 {
			t.Fatalf("expected second replacement active, got %d", target.X.N)
		}
		return nil
	},
		Replacement{Path: "pkg.mod.Settings.key", Value: "wrapped"},
		Replacement{Path: "pkg.mod.X.N", Value: 1},
	)

	if err := wrapped(); err != nil {
		t.Fatalf("unexpected wrap error: %v", err)
	}
	if len(seen) != 2 || seen[0] != "wrapped" || seen[1] != 1 {
		t.Fatalf("expected installed values in declaration order, got %v", seen)
	}
	if got := target.Settings["key"]; got != "value" {
		t.Fatalf("expected restore after the call, got %v", got)
	}
	if target.X.N != 7 {
		t.Fatalf("expected restore after the call, got %d", target.X.N)
	}

	// Each invocation is a fresh session.
	if err := wrapped(); err != nil {
		t.Fatalf("unexpected error on second invocation: %v", err)
	}
	if got := target.Settings["key"]; got != "value" {
		t.Fatalf("expected restore after second invocation, got %v", got)
	}
}

func TestWrapRestoresWhenCallableFails(t *testing.T) {
	target := newApp()
	register(t, "pkg.mod", target)

	sentinel := errors.New("callable failed")
	err := Wrap(func(...any) error { return sentinel },
		Replacement{Path: "pkg.mod.Settings.key", Value: "short-lived"},
	)()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected the callable error, got %v", err)
	}
	if got := target.Settings["key"]; got != "value" {
		t.Fatalf("expected restore despite failure, got %v", got)
	}
}

func TestWrapUnwindsPartialInstalls(t *testing.T) {
	target := newApp()
	register(t, "pkg.mod", target)

	called := false
	err := Wrap(func(...any) error { called = true; return nil },
		Replacement{Path: "pkg.mod.Settings.key", Value: "applied"},
		Replacement{Path: "pkg.mod.Settings.nope", Value: "strict failure"},
	)()
	var notFound *AttributeNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected AttributeNotFoundError, got %v", err)
	}
	if called {
		t.Fatalf("callable must not run when an install fails")
	}
	if got := target.Settings["key"]; got != "value" {
		t.Fatalf("expected earlier install unwound, got %v", got)
	}
}

func TestWrapNonStrictReplacement(t *testing.T) {
	target := newApp()
	register(t, "pkg.mod", target)

	err := Wrap(func(...any) error {
		if got := target.Settings["extra"]; got != "made up" {
			t.Fatalf("expected fabricated entry inside the call, got %v", got)
		}
		return nil
	},
		Replacement{Path: "pkg.mod.Settings.extra", Value: "made up", NonStrict: true},
	)()
	if err != nil {
		t.Fatalf("unexpected wrap error: %v", err)
	}
	if _, ok := target.Settings["extra"]; ok {
		t.Fatalf("expected fabricated entry removed after the call")
	}
}
