package pivot

import (
	"math"
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/eth-easl/schedplot/pkg/common"
	"github.com/eth-easl/schedplot/pkg/record"
)

// Table maps (axis value, variant) to the sum of a metric over all records
// sharing that pair. Rows are the distinct axis values in ascending order and
// columns are always common.Variants.
type Table struct {
	Metric   string
	Axis     string
	Category string

	rows   []float64
	values [][]float64 // NaN marks an absent cell
}

// Build pivots records on the axis column, one column per variant, summing the
// metric of records with identical axis value and variant.
func Build(records []record.DerivedRecord, metric, axis, category string) (*Table, error) {
	if category != common.ColumnVariant {
		return nil, common.SchemaError("unsupported category axis %q, only %q is categorical", category, common.ColumnVariant)
	}

	var probe record.DerivedRecord
	if _, ok := probe.Value(metric); !ok {
		return nil, common.SchemaError("unknown metric %q", metric)
	}
	if _, ok := probe.Value(axis); !ok {
		return nil, common.SchemaError("unknown axis %q", axis)
	}

	cells := make(map[float64][][]float64)
	for i, r := range records {
		if r.Variant < 0 || int(r.Variant) >= len(common.Variants) {
			return nil, common.SchemaError("record %d: unknown variant %d", i+1, int(r.Variant))
		}
		x, _ := r.Value(axis)
		y, _ := r.Value(metric)

		row, ok := cells[x]
		if !ok {
			row = make([][]float64, len(common.Variants))
			cells[x] = row
		}
		row[r.Variant] = append(row[r.Variant], y)
	}

	t := &Table{
		Metric:   metric,
		Axis:     axis,
		Category: category,
		rows:     make([]float64, 0, len(cells)),
	}
	for x := range cells {
		t.rows = append(t.rows, x)
	}
	sort.Float64s(t.rows)

	t.values = make([][]float64, len(t.rows))
	for i, x := range t.rows {
		t.values[i] = make([]float64, len(common.Variants))
		for _, v := range common.Variants {
			contributions := cells[x][v]
			if len(contributions) == 0 {
				t.values[i][v] = math.NaN()
				continue
			}
			//* Summation order is fixed so the result does not depend on input row order.
			sort.Float64s(contributions)
			t.values[i][v] = floats.Sum(contributions)
		}
	}

	log.Tracef("Pivoted %d records of %s on %s into %d rows", len(records), metric, axis, len(t.rows))
	return t, nil
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Columns() []common.Variant {
	return append([]common.Variant(nil), common.Variants...)
}

// Rows returns a copy of the axis values.
func (t *Table) Rows() []float64 {
	return append([]float64(nil), t.rows...)
}

func (t *Table) AxisValue(row int) float64 {
	return t.rows[row]
}

// Get returns the summed metric of a cell and whether any record contributed to it.
func (t *Table) Get(row int, v common.Variant) (float64, bool) {
	value := t.values[row][v]
	if math.IsNaN(value) {
		return 0, false
	}
	return value, true
}

// Lookup is Get addressed by axis value.
func (t *Table) Lookup(axisValue float64, v common.Variant) (float64, bool) {
	row := sort.SearchFloat64s(t.rows, axisValue)
	if row == len(t.rows) || t.rows[row] != axisValue {
		return 0, false
	}
	return t.Get(row, v)
}
