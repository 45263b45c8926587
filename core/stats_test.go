package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestQuantile tests the interpolated quantile calculation.
func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		q        float64
		expected float64
	}{
		{
			name:     "empty slice",
			values:   []float64{},
			q:        0.5,
			expected: 0.0,
		},
		{
			name:     "single value",
			values:   []float64{42},
			q:        0.5,
			expected: 42.0,
		},
		{
			name:     "median of two",
			values:   []float64{10, 20},
			q:        0.5,
			expected: 15.0,
		},
		{
			name:     "median of evenly spaced intervals",
			values:   []float64{10, 10},
			q:        0.5,
			expected: 10.0,
		},
		{
			name:     "median of odd count",
			values:   []float64{30, 10, 20},
			q:        0.5,
			expected: 20.0,
		},
		{
			name:     "lower quartile interpolates",
			values:   []float64{10, 20, 30, 40},
			q:        0.25,
			expected: 17.5,
		},
		{
			name:     "upper quantile interpolates",
			values:   []float64{10, 20, 30, 40},
			q:        0.75,
			expected: 32.5,
		},
		{
			name:     "unsorted input is sorted first",
			values:   []float64{40, 10, 30, 20},
			q:        0.75,
			expected: 32.5,
		},
		{
			name:     "quantile on exact order statistic",
			values:   []float64{10, 20, 30},
			q:        0.5,
			expected: 20.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Quantile(tt.values, tt.q)
			assert.InDelta(t, tt.expected, result, 0.0001)
		})
	}
}

// TestQuantileDoesNotMutateInput verifies the input slice stays unsorted.
func TestQuantileDoesNotMutateInput(t *testing.T) {
	values := []float64{30, 10, 20}
	_ = Quantile(values, 0.5)
	assert.Equal(t, []float64{30, 10, 20}, values)
}

// TestMedian tests the median shortcut.
func TestMedian(t *testing.T) {
	assert.InDelta(t, 10.0, Median([]float64{10, 10}), 0.0001)
	assert.InDelta(t, 25.0, Median([]float64{10, 20, 30, 40}), 0.0001)
}
