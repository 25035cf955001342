// Package domain implements the verification evaluator and the workflow
// that drives setup, build and test runs over a project.
package domain

import (
	"fmt"
	"strconv"
	"strings"

	m "github.com/dabecart/VVToolkit/internal/model"
)

// Evaluate decides pass/fail for one iteration's output under a rule.
// It is a pure function of its inputs.
//
// SameOutput passes iff actual equals reference byte for byte.
// ConditionalOutput applies the rule's operator to (actual, operand):
// both values are parsed as numbers when possible and compared numerically,
// otherwise compared lexicographically. The substring operators never
// attempt numeric coercion.
func Evaluate(rule m.VerificationRule, actual, reference string) (bool, error) {
	switch rule.Mode {
	case m.SameOutput:
		return actual == reference, nil
	case m.ConditionalOutput:
		return evaluateConditional(rule.Operator, actual, rule.Operand)
	default:
		return false, fmt.Errorf("unknown verification mode %q", rule.Mode)
	}
}

func evaluateConditional(op m.Operator, actual, operand string) (bool, error) {
	switch op {
	case m.OpContains:
		return strings.Contains(actual, operand), nil
	case m.OpNotContains:
		return !strings.Contains(actual, operand), nil
	case m.OpEqual, m.OpNotEqual, m.OpLess, m.OpGreater, m.OpLessOrEqual, m.OpGreaterOrEqual:
		return evaluateRelational(op, actual, operand)
	default:
		return false, fmt.Errorf("unknown operator %q", op)
	}
}

func evaluateRelational(op m.Operator, actual, operand string) (bool, error) {
	// Numeric parsing tolerates surrounding whitespace so that trailing
	// newlines from command output do not force a string comparison.
	ordering := strings.Compare(actual, operand)

	actualNum, errA := strconv.ParseFloat(strings.TrimSpace(actual), 64)
	operandNum, errB := strconv.ParseFloat(strings.TrimSpace(operand), 64)

	if errA == nil && errB == nil {
		ordering = compareFloats(actualNum, operandNum)
	}

	switch op {
	case m.OpEqual:
		return ordering == 0, nil
	case m.OpNotEqual:
		return ordering != 0, nil
	case m.OpLess:
		return ordering < 0, nil
	case m.OpGreater:
		return ordering > 0, nil
	case m.OpLessOrEqual:
		return ordering <= 0, nil
	case m.OpGreaterOrEqual:
		return ordering >= 0, nil
	default:
		return false, fmt.Errorf("operator %q is not relational", op)
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
