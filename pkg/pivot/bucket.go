package pivot

import (
	"fmt"
	"math"

	"github.com/eth-easl/schedplot/pkg/common"
)

// boundaryTolerance absorbs binary representation error so that e.g. 0.3
// lands in bucket 0.30 although 0.3/0.1 evaluates to 2.9999999999999996. It is
// a few thousand ULPs of the bucket quotient, far below any measured spacing,
// so 0.0999999999 still belongs to bucket 0.00.
const boundaryTolerance = 1e-12

// Bucketing partitions [Min, Max) into half-open intervals of Width.
type Bucketing struct {
	Width float64
	Min   float64
	Max   float64
}

func DefaultBucketing() Bucketing {
	return Bucketing{
		Width: common.DefaultBucketWidth,
		Min:   common.DefaultBucketMin,
		Max:   common.DefaultBucketMax,
	}
}

func (b Bucketing) Validate() error {
	if !(b.Width > 0) || math.IsInf(b.Width, 0) {
		return common.SchemaError("bucket width must be positive, got %v", b.Width)
	}
	if !(b.Max > b.Min) || math.IsInf(b.Min, 0) || math.IsInf(b.Max, 0) {
		return common.SchemaError("bucket range [%v, %v) is empty", b.Min, b.Max)
	}
	return nil
}

// Count is the number of buckets covering [Min, Max).
func (b Bucketing) Count() int {
	return int(math.Ceil((b.Max-b.Min)/b.Width - boundaryTolerance))
}

// Label is the lower edge of bucket i with two decimals.
func (b Bucketing) Label(i int) string {
	return fmt.Sprintf("%.2f", b.Min+float64(i)*b.Width)
}

func (b Bucketing) Labels() []string {
	labels := make([]string, b.Count())
	for i := range labels {
		labels[i] = b.Label(i)
	}
	return labels
}

// Index returns the bucket whose lower edge is the largest edge not exceeding
// x. Values outside [Min, Max) belong to no bucket.
func (b Bucketing) Index(x float64) (int, bool) {
	if math.IsNaN(x) || x < b.Min || x >= b.Max {
		return -1, false
	}

	q := (x - b.Min) / b.Width
	idx := math.Floor(q)
	if nearest := math.Round(q); math.Abs(q-nearest) < boundaryTolerance {
		idx = nearest
	}

	i := int(idx)
	if i >= b.Count() {
		i = b.Count() - 1
	}
	return i, true
}

// Assignment maps every row of a pivot table to a bucket, -1 when the row's
// axis value is out of range.
type Assignment struct {
	Bucketing Bucketing
	Rows      []int
}

// Assign buckets the rows of t by their axis value. It is the second grouping
// pass; Build already summed records sharing an axis value.
func (b Bucketing) Assign(t *Table) (Assignment, error) {
	if err := b.Validate(); err != nil {
		return Assignment{}, err
	}

	a := Assignment{Bucketing: b, Rows: make([]int, t.Len())}
	for row := range a.Rows {
		a.Rows[row], _ = b.Index(t.AxisValue(row))
	}
	return a, nil
}

// Members lists the pivot rows falling into bucket i, in ascending axis order.
func (a Assignment) Members(i int) []int {
	var rows []int
	for row, bucket := range a.Rows {
		if bucket == i {
			rows = append(rows, row)
		}
	}
	return rows
}
