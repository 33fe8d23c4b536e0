package metric

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth-easl/schedplot/pkg/aggregate"
	"github.com/eth-easl/schedplot/pkg/common"
)

func TestExporter(t *testing.T) {
	nan := math.NaN()
	table := &aggregate.Table{
		Metric:  common.MetricMissRatio,
		Axis:    common.ColumnUtilization,
		Labels:  []string{"0.00", "0.50"},
		Columns: common.Variants,
		Mean:    [][]float64{{0.075, nan, nan}, {nan, 0, nan}},
		Std:     [][]float64{{0.035, nan, nan}, {nan, nan, nan}},
		Count:   [][]int{{2, 0, 0}, {0, 1, 0}},
	}

	ep := NewExporter()
	ep.ReportTable(table)
	require.Equal(t, 2, ep.GetSummaryRecordLen())

	path := filepath.Join(t.TempDir(), "out", "summary.csv")
	require.NoError(t, ep.FinishAndSave(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var written []SummaryRecord
	require.NoError(t, gocsv.UnmarshalFile(f, &written))
	require.Len(t, written, 2)

	assert.Equal(t, "0.00", written[0].Bucket)
	assert.Equal(t, "raw", written[0].Variant)
	assert.Equal(t, 2, written[0].Count)
	assert.Equal(t, 0.075, written[0].Mean)

	assert.Equal(t, "0.50", written[1].Bucket)
	assert.Equal(t, "FP", written[1].Variant)
	assert.True(t, math.IsNaN(written[1].Std))
}
