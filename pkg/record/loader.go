package record

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/eth-easl/schedplot/pkg/common"
)

// BenchmarkRecord is one row of the scheduler benchmark output. Columns are
// bound by header name, so their order in the file does not matter.
type BenchmarkRecord struct {
	File           string         `csv:"file"`
	Variant        common.Variant `csv:"variant"`
	Utilization    float64        `csv:"utilization"`
	Jobs           int            `csv:"jobs"`
	MissedDeadline int            `csv:"missedDeadline"`
	SchedulerTime  float64        `csv:"schedulerTime"`
	TaskTime       float64        `csv:"taskTime"`
	TotalTime      float64        `csv:"totalTime"`
}

// MicroRecord is one row of the budgeted context switch micro-benchmark.
type MicroRecord struct {
	Budget     float64 `csv:"budget"`
	Iterations float64 `csv:"iterations"`
	Time       float64 `csv:"time"`
	Mean       float64 `csv:"Mean"`
	Median     float64 `csv:"Median"`
	Std        float64 `csv:"Std"`
	PerYield   float64 `csv:"Per Yield"`
}

// Column returns the value of a numeric micro-benchmark column.
func (r MicroRecord) Column(name string) (float64, bool) {
	switch name {
	case common.ColumnBudget:
		return r.Budget, true
	case common.ColumnIterations:
		return r.Iterations, true
	case common.ColumnTime:
		return r.Time, true
	case common.ColumnMean:
		return r.Mean, true
	case common.ColumnMedian:
		return r.Median, true
	case common.ColumnStd:
		return r.Std, true
	case common.ColumnPerYield:
		return r.PerYield, true
	default:
		return 0, false
	}
}

type Options struct {
	Delimiter rune
	Comment   rune
}

func DefaultOptions() Options {
	return Options{Delimiter: ',', Comment: '#'}
}

func (o Options) newReader(in io.Reader) *csv.Reader {
	reader := csv.NewReader(in)
	if o.Delimiter != 0 {
		reader.Comma = o.Delimiter
	}
	reader.Comment = o.Comment
	reader.TrimLeadingSpace = true
	return reader
}

// LoadBenchmarks reads a scheduler benchmark file into records, preserving row order.
func LoadBenchmarks(path string, opts Options) ([]BenchmarkRecord, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(path, data, opts, common.RequiredBenchmarkColumns...); err != nil {
		return nil, err
	}

	var records []BenchmarkRecord
	if err := gocsv.UnmarshalCSV(opts.newReader(bytes.NewReader(data)), &records); err != nil {
		return nil, common.WrapSchemaError(err, "cannot parse %s", path)
	}

	for i, r := range records {
		for _, c := range []struct {
			name  string
			value float64
		}{
			{common.ColumnUtilization, r.Utilization},
			{common.ColumnSchedulerTime, r.SchedulerTime},
			{common.ColumnTaskTime, r.TaskTime},
			{common.ColumnTotalTime, r.TotalTime},
		} {
			if !isFinite(c.value) {
				return nil, common.SchemaError("%s row %d: %s is not a finite number", path, i+1, c.name)
			}
		}
	}

	log.Debugf("Loaded %d benchmark records from %s", len(records), path)
	return records, nil
}

// LoadMicro reads a budgeted micro-benchmark file. The yColumn must exist next
// to the budget column. Records are returned ordered by budget.
func LoadMicro(path string, yColumn string, opts Options) ([]MicroRecord, error) {
	if _, ok := (MicroRecord{}).Column(yColumn); !ok {
		return nil, common.SchemaError("unknown micro-benchmark column %q", yColumn)
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(path, data, opts, common.ColumnBudget, yColumn); err != nil {
		return nil, err
	}

	var records []MicroRecord
	if err := gocsv.UnmarshalCSV(opts.newReader(bytes.NewReader(data)), &records); err != nil {
		return nil, common.WrapSchemaError(err, "cannot parse %s", path)
	}

	for i, r := range records {
		y, _ := r.Column(yColumn)
		if !isFinite(r.Budget) || !isFinite(y) {
			return nil, common.SchemaError("%s row %d: non-finite %s or %s", path, i+1, common.ColumnBudget, yColumn)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Budget < records[j].Budget
	})

	log.Debugf("Loaded %d micro-benchmark records from %s", len(records), path)
	return records, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.IOError(err, "cannot open %s", path)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, common.IOError(err, "cannot read %s", path)
	}
	return data, nil
}

// requireColumns checks that the header names every column and that no data
// row leaves one of them blank. gocsv would otherwise bind an empty cell to the
// zero value of the field.
func requireColumns(path string, data []byte, opts Options, columns ...string) error {
	reader := opts.newReader(bytes.NewReader(data))
	header, err := reader.Read()
	if err == io.EOF {
		return common.SchemaError("%s has no header row", path)
	} else if err != nil {
		return common.WrapSchemaError(err, "cannot read header of %s", path)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, column := range columns {
		if _, ok := index[column]; !ok {
			return common.SchemaError("%s: column %q not found", path, column)
		}
	}

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return common.WrapSchemaError(err, "cannot read %s", path)
		}
		for _, column := range columns {
			if strings.TrimSpace(fields[index[column]]) == "" {
				return common.SchemaError("%s row %d: %s is empty", path, row, column)
			}
		}
	}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
