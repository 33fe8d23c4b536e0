package pivot

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-easl/schedplot/pkg/common"
	"github.com/eth-easl/schedplot/pkg/record"
)

func TestBucketIndex(t *testing.T) {
	b := DefaultBucketing()

	tests := []struct {
		value float64
		label string
	}{
		{value: 0.0, label: "0.00"},
		{value: 0.05, label: "0.00"},
		{value: 0.07, label: "0.00"},
		{value: 0.1, label: "0.10"},
		{value: 0.2, label: "0.20"},
		{value: 0.3, label: "0.30"},
		{value: 0.55, label: "0.50"},
		{value: 0.6, label: "0.60"},
		{value: 0.7, label: "0.70"},
		{value: 0.1 + 0.2, label: "0.30"},
		{value: 0.999, label: "0.90"},
		{value: 0.0999999999, label: "0.00"},
		{value: 0.1999999999, label: "0.10"},
		{value: 0.7 - 1e-10, label: "0.60"},
		{value: -0.01, label: ""},
		{value: 1.0, label: ""},
		{value: 1.3, label: ""},
		{value: math.NaN(), label: ""},
	}

	for _, test := range tests {
		idx, ok := b.Index(test.value)
		if test.label == "" {
			assert.False(t, ok, "value %v should be excluded", test.value)
			assert.Equal(t, -1, idx)
			continue
		}
		require.True(t, ok, "value %v should be bucketed", test.value)
		assert.Equal(t, test.label, b.Label(idx), "value %v", test.value)
	}
}

func TestBucketIndexDeterministic(t *testing.T) {
	b := DefaultBucketing()
	for i := 0; i <= 1000; i++ {
		x := float64(i) / 1000
		first, firstOk := b.Index(x)
		for repeat := 0; repeat < 3; repeat++ {
			again, ok := b.Index(x)
			require.Equal(t, firstOk, ok)
			require.Equal(t, first, again)
		}
	}
}

func TestBucketLabels(t *testing.T) {
	assert.Equal(t,
		[]string{"0.00", "0.10", "0.20", "0.30", "0.40", "0.50", "0.60", "0.70", "0.80", "0.90"},
		DefaultBucketing().Labels())

	assert.Equal(t, []string{"0.00", "0.25", "0.50", "0.75"}, Bucketing{Width: 0.25, Min: 0, Max: 1}.Labels())
}

func TestBucketingValidate(t *testing.T) {
	for _, b := range []Bucketing{
		{Width: 0, Min: 0, Max: 1},
		{Width: -0.1, Min: 0, Max: 1},
		{Width: 0.1, Min: 1, Max: 1},
		{Width: math.NaN(), Min: 0, Max: 1},
	} {
		err := b.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrSchema))
	}
	require.NoError(t, DefaultBucketing().Validate())
}

func TestAssign(t *testing.T) {
	records := []record.DerivedRecord{
		derived(common.Raw, 0.05, 0.10),
		derived(common.Raw, 0.07, 0.05),
		derived(common.FixedPriority, 0.55, 0.0),
		derived(common.FixedPriority, 1.00, 0.3),
		derived(common.FixedPriority, -0.2, 0.3),
	}

	table, err := Build(records, common.MetricMissRatio, common.ColumnUtilization, common.ColumnVariant)
	require.NoError(t, err)

	assignment, err := DefaultBucketing().Assign(table)
	require.NoError(t, err)

	//* Rows are -0.2, 0.05, 0.07, 0.55, 1.00.
	assert.Equal(t, []int{-1, 0, 0, 5, -1}, assignment.Rows)
	assert.Equal(t, []int{1, 2}, assignment.Members(0))
	assert.Equal(t, []int{3}, assignment.Members(5))
	assert.Empty(t, assignment.Members(9))
}
