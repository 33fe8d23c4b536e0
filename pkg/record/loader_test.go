package record

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-easl/schedplot/pkg/common"
)

func TestLoadBenchmarks(t *testing.T) {
	records, err := LoadBenchmarks("testdata/benchmark_output.csv", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 6)

	first := records[0]
	assert.Equal(t, "taskset-0.js", first.File)
	assert.Equal(t, common.EarliestDeadlineFirst, first.Variant)
	assert.Equal(t, 50, first.Jobs)
	assert.Equal(t, 0.55, first.Utilization)
	assert.Equal(t, 0, first.MissedDeadline)
	assert.Equal(t, 98.5, first.TaskTime)
	assert.Equal(t, 101.2, first.SchedulerTime)
	assert.Equal(t, 1200.5, first.TotalTime)

	last := records[5]
	assert.Equal(t, common.Raw, last.Variant)
	assert.Equal(t, 10, last.MissedDeadline)
}

func TestLoadBenchmarksBindsByName(t *testing.T) {
	opts := DefaultOptions()
	opts.Delimiter = ';'

	records, err := LoadBenchmarks("testdata/reordered.csv", opts)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, BenchmarkRecord{
		Variant:        common.Raw,
		Utilization:    0.05,
		Jobs:           100,
		MissedDeadline: 10,
		SchedulerTime:  11.0,
		TaskTime:       10.0,
	}, records[0])
	assert.Equal(t, common.FixedPriority, records[1].Variant)
}

func TestLoadBenchmarksErrors(t *testing.T) {
	tests := []struct {
		testName string
		file     string
		kind     error
	}{
		{testName: "missing_file", file: "does_not_exist.csv", kind: common.ErrIO},
		{testName: "missing_column", file: "missing_column.csv", kind: common.ErrSchema},
		{testName: "unknown_variant", file: "unknown_variant.csv", kind: common.ErrSchema},
		{testName: "bad_number", file: "bad_number.csv", kind: common.ErrSchema},
		{testName: "nan_value", file: "nan_value.csv", kind: common.ErrSchema},
		{testName: "empty_file", file: "empty.csv", kind: common.ErrSchema},
		{testName: "empty_cells", file: "empty_cell.csv", kind: common.ErrSchema},
		{testName: "empty_jobs", file: "empty_jobs.csv", kind: common.ErrSchema},
	}

	for _, test := range tests {
		t.Run(test.testName, func(t *testing.T) {
			records, err := LoadBenchmarks(filepath.Join("testdata", test.file), DefaultOptions())
			require.Error(t, err)
			assert.Nil(t, records)
			assert.True(t, errors.Is(err, test.kind), "unexpected error kind: %v", err)
		})
	}
}

func TestLoadBenchmarksMissingColumnIsNamed(t *testing.T) {
	_, err := LoadBenchmarks("testdata/missing_column.csv", DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"taskTime"`)
}

func TestLoadBenchmarksEmptyCellIsNamed(t *testing.T) {
	_, err := LoadBenchmarks("testdata/empty_cell.csv", DefaultOptions())
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrArithmetic))
	assert.Contains(t, err.Error(), "row 2: utilization is empty")
}

func TestLoadMicro(t *testing.T) {
	records, err := LoadMicro("testdata/context_switch_overhead_budgeted.csv", common.ColumnPerYield, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 4)

	budgets := make([]float64, 0, len(records))
	for _, r := range records {
		budgets = append(budgets, r.Budget)
	}
	assert.Equal(t, []float64{0, 1, 10, 100}, budgets)

	y, ok := records[0].Column(common.ColumnPerYield)
	require.True(t, ok)
	assert.Equal(t, 17.77, y)
}

func TestLoadMicroErrors(t *testing.T) {
	_, err := LoadMicro("testdata/context_switch_overhead_budgeted.csv", "Per Op", DefaultOptions())
	assert.True(t, errors.Is(err, common.ErrSchema))

	_, err = LoadMicro("testdata/benchmark_output.csv", common.ColumnPerYield, DefaultOptions())
	assert.True(t, errors.Is(err, common.ErrSchema))

	_, err = LoadMicro("testdata/nothing_here.csv", common.ColumnPerYield, DefaultOptions())
	assert.True(t, errors.Is(err, common.ErrIO))

	for _, file := range []string{"micro_empty_budget.csv", "micro_empty_y.csv"} {
		records, err := LoadMicro(filepath.Join("testdata", file), common.ColumnPerYield, DefaultOptions())
		assert.Nil(t, records)
		assert.True(t, errors.Is(err, common.ErrSchema), "%s: unexpected error: %v", file, err)
	}
}
