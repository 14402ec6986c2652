package runner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ptype-e2e/internal/agent"
	"ptype-e2e/internal/scenario"
)

// checkExpectation compares a captured value against an evaluate step's
// expectation. The returned detail always records what was captured; err is
// non-nil on mismatch.
func checkExpectation(e *scenario.Expect, got any) (string, error) {
	detail := fmt.Sprintf("got %s", formatValue(got))

	switch e.Kind {
	case scenario.ExpectLiteral:
		if formatValue(got) != e.Value {
			return detail, fmt.Errorf("expected %q, got %s", e.Value, formatValue(got))
		}
		return detail, nil

	case scenario.ExpectPredicate:
		n, err := toFloat64(got)
		if err != nil {
			return detail, fmt.Errorf("predicate %q: %w", e.Description, err)
		}
		if !compare(n, e.Op, e.Threshold) {
			return detail, fmt.Errorf("predicate %q failed: %v %s %v is false",
				e.Description, formatValue(got), e.Op, formatValue(e.Threshold))
		}
		return detail, nil

	default:
		return detail, fmt.Errorf("unknown expectation kind %q", e.Kind)
	}
}

// checkConsole evaluates a console_messages step. With errorsOnly set, any
// collected error fails the step; otherwise the messages are informational.
func checkConsole(msgs []agent.ConsoleMessage, errorsOnly bool) (string, error) {
	if errorsOnly {
		if len(msgs) > 0 {
			lines := make([]string, len(msgs))
			for i, m := range msgs {
				lines[i] = m.Text
			}
			return fmt.Sprintf("%d console errors", len(msgs)),
				fmt.Errorf("console errors present: %s", strings.Join(lines, "; "))
		}
		return "no console errors", nil
	}
	return fmt.Sprintf("%d console messages", len(msgs)), nil
}

// formatSnapshotDetail summarizes a DOM snapshot for the report without
// embedding the whole document.
func formatSnapshotDetail(html string) string {
	return fmt.Sprintf("DOM snapshot captured (%d bytes)", len(html))
}

// formatValue normalizes captured values to the literal string form used in
// expectations: booleans as "true"/"false", integral floats without a
// trailing ".0". CDP returns all page numbers as float64.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// toFloat64 coerces a captured value to a number for predicate comparison.
func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("captured value %q is not numeric", x)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("captured value %v (%T) is not numeric", v, v)
	}
}

func compare(n float64, op scenario.CompareOp, threshold float64) bool {
	switch op {
	case scenario.OpEqual:
		return n == threshold
	case scenario.OpGreater:
		return n > threshold
	case scenario.OpGreaterOrEqual:
		return n >= threshold
	case scenario.OpLess:
		return n < threshold
	case scenario.OpLessOrEqual:
		return n <= threshold
	default:
		return false
	}
}
