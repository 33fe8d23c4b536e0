package metric

import (
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/eth-easl/schedplot/pkg/aggregate"
	"github.com/eth-easl/schedplot/pkg/common"
)

// SummaryRecord is one present (bucket, variant) cell of an aggregated table.
type SummaryRecord struct {
	Metric  string  `csv:"metric"`
	Axis    string  `csv:"axis"`
	Bucket  string  `csv:"bucket"`
	Variant string  `csv:"variant"`
	Count   int     `csv:"count"`
	Mean    float64 `csv:"mean"`
	Std     float64 `csv:"std"`
}

// Exporter collects aggregated tables and writes them as one CSV file.
type Exporter struct {
	summaryRecords []SummaryRecord
}

func NewExporter() Exporter {
	return Exporter{
		summaryRecords: []SummaryRecord{},
	}
}

// ReportTable appends every cell that has at least one contribution. Absent
// cells are skipped rather than written as zeros.
func (ep *Exporter) ReportTable(t *aggregate.Table) {
	for row, label := range t.Labels {
		for col, variant := range t.Columns {
			if t.Count[row][col] == 0 {
				continue
			}
			ep.summaryRecords = append(ep.summaryRecords, SummaryRecord{
				Metric:  t.Metric,
				Axis:    t.Axis,
				Bucket:  label,
				Variant: variant.String(),
				Count:   t.Count[row][col],
				Mean:    t.Mean[row][col],
				Std:     t.Std[row][col],
			})
		}
	}
}

func (ep *Exporter) GetSummaryRecordLen() int {
	return len(ep.summaryRecords)
}

func (ep *Exporter) FinishAndSave(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return common.IOError(err, "cannot create directory for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return common.IOError(err, "cannot create %s", path)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&ep.summaryRecords, f); err != nil {
		return common.IOError(err, "cannot write %s", path)
	}

	log.Infof("Summary of %d cells written to %s", len(ep.summaryRecords), path)
	return nil
}
