package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/dabecart/VVToolkit/internal/model"
)

func sampleReport() *m.RunReport {
	started := time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC)

	return &m.RunReport{
		ID:         "run-1234",
		Project:    "firmware checks",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Outcomes: []m.TestOutcome{
			{
				ItemID:   1,
				Name:     "version banner",
				Category: "smoke",
				Rule:     &m.VerificationRule{Mode: m.SameOutput},
				Attempts: []m.TestAttempt{
					{
						StartedAt: started,
						Iterations: []m.IterationResult{
							{Output: "v1.2.3\n", Passed: true},
						},
					},
				},
			},
			{
				ItemID:   2,
				Name:     "broken",
				Category: "smoke",
				Attempts: []m.TestAttempt{
					{
						StartedAt: started,
						Invalid:   true,
						Err:       m.NewProcessError(m.CodeMissingRule, "test 2 has no verification rule"),
					},
				},
			},
		},
	}
}

func TestFileResultStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := m.Path(filepath.Join(t.TempDir(), "run.vvt"))
	store := NewFileResultStore()

	require.NoError(t, store.SaveReport(path, sampleReport()))

	loaded, err := store.LoadReport(path)
	require.NoError(t, err)

	assert.Equal(t, "run-1234", loaded.ID)
	assert.Equal(t, "firmware checks", loaded.Project)
	require.Len(t, loaded.Outcomes, 2)

	first := loaded.OutcomeByID(1)
	require.NotNil(t, first)
	assert.True(t, first.Passed())

	second := loaded.OutcomeByID(2)
	require.NotNil(t, second)
	assert.True(t, second.Invalid())
	require.NotNil(t, second.Latest().Err)
	assert.Equal(t, m.CodeMissingRule, second.Latest().Err.Code)

	passed, failed, invalid := loaded.Summary()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 1, invalid)
}

func TestFileResultStore_LoadRejectsMissingRunID(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.vvt")
	require.NoError(t, os.WriteFile(path, []byte(`{"project":"x","results":[]}`), 0o644))

	_, err := NewFileResultStore().LoadReport(m.Path(path))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "no run id")
}

func TestFileResultStore_LoadRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.vvt")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewFileResultStore().LoadReport(m.Path(path))
	require.Error(t, err)
}
