package fixtures

import (
	"strings"
	"testing"
)

func TestCompareMatch(t *testing.T) {
	if err := Compare(map[string]int{"a": 1}, map[string]int{"a": 1}); err != nil {
		t.Fatalf("expected equal values to compare clean: %v", err)
	}
}

func TestCompareMismatchIncludesDiff(t *testing.T) {
	err := Compare([]string{"a", "b"}, []string{"a", "c"})
	if err == nil {
		t.Fatalf("expected a diff error")
	}
	if !strings.Contains(err.Error(), "-expected +actual") {
		t.Fatalf("expected diff orientation in message, got %q", err.Error())
	}
}
