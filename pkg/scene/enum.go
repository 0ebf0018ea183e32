package scene

import (
	"strings"

	"github.com/matzehuels/schematic/pkg/errors"
)

// enumName returns names[v], or "unknown" when v is out of range.
func enumName[T ~int](names []string, v T) string {
	if v < 0 || int(v) >= len(names) {
		return "unknown"
	}
	return names[v]
}

// parseEnum looks s up in names case-insensitively. The empty string maps
// to the zero value so omitted JSON fields decode to defaults.
func parseEnum[T ~int](names []string, what, s string) (T, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	if n == "" {
		return 0, nil
	}
	for i, name := range names {
		if name == n {
			return T(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown %s %q", what, s)
}
