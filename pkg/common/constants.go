/*
 * MIT License
 *
 * Copyright (c) 2023 EASL and the vHive community
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package common

import "fmt"

// Variant is the scheduler policy a benchmark run was executed under.
type Variant int

const (
	Raw Variant = iota
	FixedPriority
	EarliestDeadlineFirst
)

// Variants is the column order of every pivot and aggregated table. It never
// depends on the order in which variants appear in the input.
var Variants = []Variant{Raw, FixedPriority, EarliestDeadlineFirst}

var variantNames = [...]string{
	Raw:                   "raw",
	FixedPriority:         "FP",
	EarliestDeadlineFirst: "EDF",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// ParseVariant maps the name used in benchmark files to a Variant.
func ParseVariant(name string) (Variant, bool) {
	for _, v := range Variants {
		if variantNames[v] == name {
			return v, true
		}
	}
	return 0, false
}

// Column names of the scheduler benchmark file.
const (
	ColumnFile           = "file"
	ColumnVariant        = "variant"
	ColumnUtilization    = "utilization"
	ColumnJobs           = "jobs"
	ColumnMissedDeadline = "missedDeadline"
	ColumnSchedulerTime  = "schedulerTime"
	ColumnTaskTime       = "taskTime"
	ColumnTotalTime      = "totalTime"
)

// Derived metrics.
const (
	MetricMissRatio = "miss-ratio"
	MetricOverhead  = "overhead"
)

// Column names of the budgeted micro-benchmark file.
const (
	ColumnBudget     = "budget"
	ColumnIterations = "iterations"
	ColumnTime       = "time"
	ColumnMean       = "Mean"
	ColumnMedian     = "Median"
	ColumnStd        = "Std"
	ColumnPerYield   = "Per Yield"
)

// RequiredBenchmarkColumns must all be present in the header of a scheduler benchmark file.
var RequiredBenchmarkColumns = []string{
	ColumnVariant,
	ColumnUtilization,
	ColumnJobs,
	ColumnMissedDeadline,
	ColumnSchedulerTime,
	ColumnTaskTime,
}

const (
	DefaultBenchmarkInput = "benchmark_output.csv"
	DefaultMicroInput     = "context_switch_overhead_budgeted.csv"

	DefaultBucketWidth = 0.10
	DefaultBucketMin   = 0.0
	DefaultBucketMax   = 1.0
)

// UnmarshalCSV lets gocsv bind the variant column directly.
func (v *Variant) UnmarshalCSV(field string) error {
	parsed, ok := ParseVariant(field)
	if !ok {
		return fmt.Errorf("unknown variant %q", field)
	}
	*v = parsed
	return nil
}

func (v Variant) MarshalCSV() (string, error) {
	return v.String(), nil
}
