package factor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactorAt(t *testing.T) {
	sched := New([]Period{
		{Begin: "06:00", Factor: 1.0},
		{Begin: "12:00", Factor: 0.8},
	})

	tests := []struct {
		name     string
		clock    string
		expected float64
	}{
		{
			name:     "before_first_boundary",
			clock:    "05:00",
			expected: 0,
		},
		{
			name:     "on_first_boundary",
			clock:    "06:00",
			expected: 0,
		},
		{
			name:     "within_first_period",
			clock:    "07:00",
			expected: 1.0,
		},
		{
			name:     "within_second_period",
			clock:    "13:00",
			expected: 0.8,
		},
		{
			name:     "late_evening",
			clock:    "23:59",
			expected: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sched.FactorAt(tt.clock))
		})
	}
}

func TestFactorAtEmptySchedule(t *testing.T) {
	assert.Equal(t, 0.0, New(nil).FactorAt("12:00"))

	var nilSched *Schedule
	assert.Equal(t, 0.0, nilSched.FactorAt("12:00"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "factors.yaml")
	content := `periods:
  - begin: "06:00"
    factor: 1.5
  - begin: "11:30"
    factor: 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	sched, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, sched.Len())
	assert.Equal(t, 1.5, sched.FactorAt("08:00"))
	assert.Equal(t, 1.0, sched.FactorAt("12:00"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	sched, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, sched.Len())
}

func TestLoadMalformedFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("periods: {not a list"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
