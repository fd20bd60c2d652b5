package reconcile

import (
	"fmt"
	"strings"

	"github.com/caseatlas/caseatlas/pkg/errors"
)

// ParseBoolList decodes a bracketed, comma-separated boolean list such
// as "[False, True, False]" into a differs vector. The decode is
// strict: the list must be bracketed, every element must read as a
// boolean (case-insensitive), and the length must match want exactly.
func ParseBoolList(raw string, want int) ([]bool, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, parseErr(raw, "response is not a bracketed list")
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		if want == 0 {
			return []bool{}, nil
		}
		return nil, parseErr(raw, "empty list")
	}

	parts := strings.Split(inner, ",")
	if len(parts) != want {
		return nil, parseErr(raw, fmt.Sprintf("expected %d booleans, got %d", want, len(parts)))
	}

	out := make([]bool, len(parts))
	for i, part := range parts {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "true":
			out[i] = true
		case "false":
			out[i] = false
		default:
			return nil, parseErr(raw, fmt.Sprintf("element %d is not a boolean: %q", i, strings.TrimSpace(part)))
		}
	}

	return out, nil
}

func parseErr(raw, message string) error {
	return &errors.ParseError{Format: "booleans", Source: raw, Message: message}
}
