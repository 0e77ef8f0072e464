package fixtures

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Compare reports a structural diff between expected and actual, or nil when
// they match. The error text is readable enough to surface directly in test
// failures.
func Compare(expected, actual any, opts ...cmp.Option) error {
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		return fmt.Errorf("fixtures: values differ (-expected +actual):\n%s", diff)
	}
	return nil
}
