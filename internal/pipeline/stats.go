package pipeline

import (
	"github.com/backmassage/jxlmigrate/internal/planner"
)

// RunStats is the batch summary. It is only ever produced by [Aggregate].
type RunStats struct {
	Total       int // every discovered file
	Converted   int
	Skipped     int // skipped for any reason other than an unsupported extension
	Unsupported int
	Failed      int

	// TotalBefore sums the discovery-time size of every file with a
	// supported source extension, whatever its outcome. TotalAfter sums the
	// output size of successful conversions only.
	TotalBefore int64
	TotalAfter  int64

	Failures []Outcome
}

// Aggregate folds outcomes into RunStats. The counters and byte totals do not
// depend on the order of outcomes; Failures keeps their order.
func Aggregate(outcomes []Outcome) RunStats {
	var s RunStats
	for _, o := range outcomes {
		s.Total++
		if planner.IsSupported(o.Source.Ext) {
			s.TotalBefore += o.Source.Size
		}

		switch o.Status {
		case StatusSuccess:
			s.Converted++
			s.TotalAfter += o.OutputSize
		case StatusSkipped:
			if o.Action == planner.ActionUnsupported {
				s.Unsupported++
			} else {
				s.Skipped++
			}
		case StatusFailed:
			s.Failed++
			s.Failures = append(s.Failures, o)
		}
	}
	return s
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalBefore - s.TotalAfter
}

// Reduction returns the size reduction in percent, (1 - after/before) * 100.
// ok is false when nothing was measured (TotalBefore is zero).
func (s *RunStats) Reduction() (pct float64, ok bool) {
	if s.TotalBefore == 0 {
		return 0, false
	}
	return (1 - float64(s.TotalAfter)/float64(s.TotalBefore)) * 100, true
}
