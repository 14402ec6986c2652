package scenario

import "fmt"

// ExpectKind selects the variant of an [Expect].
type ExpectKind string

const (
	// ExpectLiteral compares the captured value against a literal.
	ExpectLiteral ExpectKind = "literal"
	// ExpectPredicate compares a captured numeric value against a threshold.
	ExpectPredicate ExpectKind = "predicate"
)

// CompareOp is the comparison operator of a predicate expectation.
type CompareOp string

const (
	OpEqual          CompareOp = "=="
	OpGreater        CompareOp = ">"
	OpGreaterOrEqual CompareOp = ">="
	OpLess           CompareOp = "<"
	OpLessOrEqual    CompareOp = "<="
)

var knownOps = map[CompareOp]bool{
	OpEqual:          true,
	OpGreater:        true,
	OpGreaterOrEqual: true,
	OpLess:           true,
	OpLessOrEqual:    true,
}

// Expect is the expected outcome of an evaluate step.
//
// Expect is a tagged variant: a literal value (string or boolean, compared
// after string normalization) or a predicate over a captured numeric value
// (e.g. frames per second >= 30). Predicates are modeled declaratively as an
// operator plus threshold rather than as a function value, so expectations
// survive serialization round-trips. The comparison itself is performed by
// the runner; the catalogue carries data only.
type Expect struct {
	// Kind selects the variant. Required.
	Kind ExpectKind `yaml:"kind" json:"kind"`

	// Value is the expected literal, in normalized string form
	// (booleans as "true"/"false"). Used by the literal variant.
	Value string `yaml:"value,omitempty" json:"value,omitempty"`

	// Description summarizes the predicate (e.g. "fps at least 30").
	// Used by the predicate variant.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Op is the comparison operator. Used by the predicate variant.
	Op CompareOp `yaml:"op,omitempty" json:"op,omitempty"`

	// Threshold is the comparison operand. Used by the predicate variant.
	Threshold float64 `yaml:"threshold,omitempty" json:"threshold,omitempty"`
}

// Literal builds a literal expectation.
func Literal(value string) *Expect {
	return &Expect{Kind: ExpectLiteral, Value: value}
}

// Predicate builds a predicate expectation comparing the captured numeric
// value as: value <op> threshold.
func Predicate(description string, op CompareOp, threshold float64) *Expect {
	return &Expect{
		Kind:        ExpectPredicate,
		Description: description,
		Op:          op,
		Threshold:   threshold,
	}
}

// Validate checks the variant tag and its required fields.
func (e *Expect) Validate() error {
	switch e.Kind {
	case ExpectLiteral:
		return nil
	case ExpectPredicate:
		if !knownOps[e.Op] {
			return fmt.Errorf("unknown comparison operator %q", e.Op)
		}
		return nil
	default:
		return fmt.Errorf("unknown expectation kind %q", e.Kind)
	}
}

// String returns a short human-readable form, used in step listings.
func (e *Expect) String() string {
	switch e.Kind {
	case ExpectLiteral:
		return fmt.Sprintf("== %q", e.Value)
	case ExpectPredicate:
		if e.Description != "" {
			return e.Description
		}
		return fmt.Sprintf("%s %v", e.Op, e.Threshold)
	default:
		return string(e.Kind)
	}
}
