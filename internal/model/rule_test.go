package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	t.Parallel()

	mode, err := ParseMode("same-output")
	require.NoError(t, err)
	assert.Equal(t, SameOutput, mode)

	mode, err = ParseMode("conditional-output")
	require.NoError(t, err)
	assert.Equal(t, ConditionalOutput, mode)

	_, err = ParseMode("fuzzy")
	assert.Error(t, err)
}

func TestParseOperator(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"eq", "ne", "lt", "gt", "le", "ge", "contains", "not-contains"} {
		op, err := ParseOperator(s)
		require.NoError(t, err, s)
		assert.Equal(t, Operator(s), op)
	}

	_, err := ParseOperator("like")
	assert.Error(t, err)
}

func TestVerificationRule_UsesBuildOutput(t *testing.T) {
	t.Parallel()

	assert.True(t, VerificationRule{Mode: SameOutput}.UsesBuildOutput())
	assert.False(t, VerificationRule{Mode: ConditionalOutput, Operator: OpEqual}.UsesBuildOutput())
}

func TestVerificationRule_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "same as build output", VerificationRule{Mode: SameOutput}.String())

	rule := VerificationRule{Mode: ConditionalOutput, Operator: OpGreater, Operand: "9"}
	assert.Equal(t, `output gt "9"`, rule.String())
}

func TestProcessError_Format(t *testing.T) {
	t.Parallel()

	err := NewProcessError(CodeTimeout, "test %d timed out after %s", 4, "30s")

	assert.Equal(t, CodeTimeout, err.Code)
	assert.Equal(t, "E03: test 4 timed out after 30s", err.Error())
}
