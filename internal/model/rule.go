package model

import "fmt"

// VerificationMode selects how a test's output is judged.
type VerificationMode string

const (
	// SameOutput passes when the output matches the baseline byte for byte.
	SameOutput VerificationMode = "same-output"
	// ConditionalOutput passes when an operator holds between the output and
	// a configured operand.
	ConditionalOutput VerificationMode = "conditional-output"
)

// Operator is a conditional-output comparison operator.
type Operator string

const (
	OpEqual          Operator = "eq"
	OpNotEqual       Operator = "ne"
	OpLess           Operator = "lt"
	OpGreater        Operator = "gt"
	OpLessOrEqual    Operator = "le"
	OpGreaterOrEqual Operator = "ge"
	OpContains       Operator = "contains"
	OpNotContains    Operator = "not-contains"
)

// VerificationRule is the pass/fail policy attached to a test during build.
// Operator and Operand are only meaningful in ConditionalOutput mode.
type VerificationRule struct {
	Mode     VerificationMode `json:"mode"`
	Operator Operator         `json:"operator,omitempty"`
	Operand  string           `json:"operand,omitempty"`
}

// UsesBuildOutput reports whether the rule needs a baseline capture.
func (r VerificationRule) UsesBuildOutput() bool {
	return r.Mode == SameOutput
}

func (r VerificationRule) String() string {
	if r.Mode == SameOutput {
		return "same as build output"
	}

	return fmt.Sprintf("output %s %q", r.Operator, r.Operand)
}

// ParseMode converts a user-supplied mode string.
func ParseMode(s string) (VerificationMode, error) {
	switch VerificationMode(s) {
	case SameOutput, ConditionalOutput:
		return VerificationMode(s), nil
	default:
		return "", fmt.Errorf("unknown verification mode %q", s)
	}
}

// ParseOperator converts a user-supplied operator string.
func ParseOperator(s string) (Operator, error) {
	switch Operator(s) {
	case OpEqual, OpNotEqual, OpLess, OpGreater, OpLessOrEqual, OpGreaterOrEqual, OpContains, OpNotContains:
		return Operator(s), nil
	default:
		return "", fmt.Errorf("unknown operator %q", s)
	}
}
