package record

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-easl/schedplot/pkg/common"
)

func TestDerive(t *testing.T) {
	input := []BenchmarkRecord{
		{Variant: common.Raw, Utilization: 0.05, Jobs: 100, MissedDeadline: 10, SchedulerTime: 10, TaskTime: 10},
		{Variant: common.FixedPriority, Utilization: 0.55, Jobs: 50, MissedDeadline: 0, SchedulerTime: 11, TaskTime: 10},
		{Variant: common.EarliestDeadlineFirst, Utilization: 0.9, Jobs: 8, MissedDeadline: 8, SchedulerTime: 0, TaskTime: 4},
	}
	before := append([]BenchmarkRecord(nil), input...)

	derived, err := Derive(input)
	require.NoError(t, err)
	require.Len(t, derived, len(input))
	require.Equal(t, before, input)

	expected := []struct{ missRatio, overhead float64 }{
		{0.10, 1.0},
		{0.0, 1.1},
		{1.0, 0.0},
	}
	for i, e := range expected {
		assert.Equal(t, input[i], derived[i].BenchmarkRecord)
		assert.InDelta(t, e.missRatio, derived[i].MissRatio, 1e-12)
		assert.InDelta(t, e.overhead, derived[i].Overhead, 1e-12)
	}
}

func TestDeriveMissRatioBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	input := make([]BenchmarkRecord, 1000)
	for i := range input {
		jobs := rng.Intn(10_000) + 1
		input[i] = BenchmarkRecord{
			Jobs:           jobs,
			MissedDeadline: rng.Intn(jobs + 1),
			SchedulerTime:  rng.Float64() * 100,
			TaskTime:       rng.Float64()*100 + 1e-3,
		}
	}

	derived, err := Derive(input)
	require.NoError(t, err)

	for _, r := range derived {
		require.GreaterOrEqual(t, r.MissRatio, 0.0)
		require.LessOrEqual(t, r.MissRatio, 1.0)
		require.False(t, math.IsInf(r.Overhead, 0) || math.IsNaN(r.Overhead))
	}
}

func TestDeriveRejectsInvalidRecords(t *testing.T) {
	valid := BenchmarkRecord{Jobs: 10, MissedDeadline: 1, SchedulerTime: 1, TaskTime: 1}

	tests := []struct {
		testName string
		mutate   func(r *BenchmarkRecord)
	}{
		{testName: "zero_task_time", mutate: func(r *BenchmarkRecord) { r.TaskTime = 0 }},
		{testName: "negative_task_time", mutate: func(r *BenchmarkRecord) { r.TaskTime = -1 }},
		{testName: "zero_jobs", mutate: func(r *BenchmarkRecord) { r.Jobs = 0; r.MissedDeadline = 0 }},
		{testName: "missed_more_than_jobs", mutate: func(r *BenchmarkRecord) { r.MissedDeadline = 11 }},
		{testName: "negative_missed", mutate: func(r *BenchmarkRecord) { r.MissedDeadline = -1 }},
		{testName: "negative_scheduler_time", mutate: func(r *BenchmarkRecord) { r.SchedulerTime = -0.5 }},
	}

	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			broken := valid
			test.mutate(&broken)

			derived, err := Derive([]BenchmarkRecord{valid, broken})
			require.Error(t, err)
			assert.Nil(t, derived)
			assert.True(t, errors.Is(err, common.ErrArithmetic))
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}

func TestDerivedRecordValue(t *testing.T) {
	r := DerivedRecord{
		BenchmarkRecord: BenchmarkRecord{Utilization: 0.3, Jobs: 4, TaskTime: 2},
		MissRatio:       0.25,
		Overhead:        1.5,
	}

	for name, expected := range map[string]float64{
		common.MetricMissRatio:   0.25,
		common.MetricOverhead:    1.5,
		common.ColumnUtilization: 0.3,
		common.ColumnJobs:        4,
		common.ColumnTaskTime:    2,
	} {
		got, ok := r.Value(name)
		require.True(t, ok, name)
		assert.Equal(t, expected, got, name)
	}

	_, ok := r.Value(common.ColumnVariant)
	assert.False(t, ok)
}
