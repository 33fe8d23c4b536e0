package record

import (
	"github.com/eth-easl/schedplot/pkg/common"
)

// DerivedRecord is a benchmark record extended with its relative metrics.
type DerivedRecord struct {
	BenchmarkRecord

	// MissRatio = MissedDeadline / Jobs, within [0, 1].
	MissRatio float64
	// Overhead = SchedulerTime / TaskTime, close to 1.0 when scheduling is cheap.
	Overhead float64
}

// Derive computes miss-ratio and overhead for every record. The input slice is
// left untouched and the output keeps its length and order. A record breaking
// the jobs/taskTime invariants fails the whole batch.
func Derive(records []BenchmarkRecord) ([]DerivedRecord, error) {
	result := make([]DerivedRecord, 0, len(records))

	for i, r := range records {
		switch {
		case r.Jobs <= 0:
			return nil, common.ArithmeticError("row %d: jobs must be positive, got %d", i+1, r.Jobs)
		case r.TaskTime <= 0:
			return nil, common.ArithmeticError("row %d: taskTime must be positive, got %v", i+1, r.TaskTime)
		case r.MissedDeadline < 0 || r.MissedDeadline > r.Jobs:
			return nil, common.ArithmeticError("row %d: missedDeadline %d outside [0, %d]", i+1, r.MissedDeadline, r.Jobs)
		case r.SchedulerTime < 0:
			return nil, common.ArithmeticError("row %d: negative schedulerTime %v", i+1, r.SchedulerTime)
		}

		result = append(result, DerivedRecord{
			BenchmarkRecord: r,
			MissRatio:       float64(r.MissedDeadline) / float64(r.Jobs),
			Overhead:        r.SchedulerTime / r.TaskTime,
		})
	}

	return result, nil
}

// Value looks up a numeric column or derived metric by its file/metric name.
func (r DerivedRecord) Value(name string) (float64, bool) {
	switch name {
	case common.MetricMissRatio:
		return r.MissRatio, true
	case common.MetricOverhead:
		return r.Overhead, true
	case common.ColumnUtilization:
		return r.Utilization, true
	case common.ColumnJobs:
		return float64(r.Jobs), true
	case common.ColumnMissedDeadline:
		return float64(r.MissedDeadline), true
	case common.ColumnSchedulerTime:
		return r.SchedulerTime, true
	case common.ColumnTaskTime:
		return r.TaskTime, true
	case common.ColumnTotalTime:
		return r.TotalTime, true
	default:
		return 0, false
	}
}
