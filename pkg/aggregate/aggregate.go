package aggregate

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/eth-easl/schedplot/pkg/common"
	"github.com/eth-easl/schedplot/pkg/pivot"
)

// Table holds per bucket, per variant summary statistics of one metric. Mean,
// Std and Count share the shape len(Labels) x len(Columns).
type Table struct {
	Metric  string
	Axis    string
	Labels  []string
	Columns []common.Variant

	// Mean is NaN where no axis value contributed.
	Mean [][]float64
	// Std is the unbiased sample standard deviation, NaN with fewer than two contributions.
	Std   [][]float64
	Count [][]int
}

// Stat is a single aggregated cell.
type Stat struct {
	Mean  float64
	Std   float64
	Count int
}

// Aggregate summarises a bucketed pivot table. The sample of a (bucket,
// variant) cell is the set of summed pivot entries whose axis value falls into
// the bucket, one value per distinct axis value.
func Aggregate(t *pivot.Table, a pivot.Assignment) (*Table, error) {
	if len(a.Rows) != t.Len() {
		return nil, common.SchemaError("bucket assignment covers %d rows, pivot table has %d", len(a.Rows), t.Len())
	}

	labels := a.Bucketing.Labels()
	result := &Table{
		Metric:  t.Metric,
		Axis:    t.Axis,
		Labels:  labels,
		Columns: t.Columns(),
		Mean:    make([][]float64, len(labels)),
		Std:     make([][]float64, len(labels)),
		Count:   make([][]int, len(labels)),
	}

	for bucket := range labels {
		result.Mean[bucket] = make([]float64, len(result.Columns))
		result.Std[bucket] = make([]float64, len(result.Columns))
		result.Count[bucket] = make([]int, len(result.Columns))

		members := a.Members(bucket)
		for col, v := range result.Columns {
			sample := make([]float64, 0, len(members))
			for _, row := range members {
				if value, ok := t.Get(row, v); ok {
					sample = append(sample, value)
				}
			}

			mean, std := summarize(sample)
			result.Mean[bucket][col] = mean
			result.Std[bucket][col] = std
			result.Count[bucket][col] = len(sample)
		}
	}

	excluded := 0
	for _, bucket := range a.Rows {
		if bucket < 0 {
			excluded++
		}
	}
	if excluded > 0 {
		log.Debugf("%d %s values of %s fall outside [%v, %v) and were excluded", excluded, t.Axis, t.Metric, a.Bucketing.Min, a.Bucketing.Max)
	}

	return result, nil
}

func summarize(sample []float64) (mean, std float64) {
	switch len(sample) {
	case 0:
		return math.NaN(), math.NaN()
	case 1:
		return sample[0], math.NaN()
	default:
		return stat.MeanStdDev(sample, nil)
	}
}

// Cell returns the statistics of a bucket and variant, false when the
// combination has no contributions.
func (t *Table) Cell(label string, v common.Variant) (Stat, bool) {
	for row, l := range t.Labels {
		if l != label {
			continue
		}
		for col, c := range t.Columns {
			if c == v && t.Count[row][col] > 0 {
				return Stat{Mean: t.Mean[row][col], Std: t.Std[row][col], Count: t.Count[row][col]}, true
			}
		}
	}
	return Stat{}, false
}

// ObservedLabels lists the buckets with at least one contribution.
func (t *Table) ObservedLabels() []string {
	var labels []string
	for row, label := range t.Labels {
		for col := range t.Columns {
			if t.Count[row][col] > 0 {
				labels = append(labels, label)
				break
			}
		}
	}
	return labels
}
