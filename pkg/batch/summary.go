package batch

import (
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"shortcardiac/pkg/pipeline"
)

// Stats describes one measurement across the calculable slices.
type Stats struct {
	N      int
	Mean   float64
	StdDev float64
	Median float64
}

// Summary collects batch level counts and a few headline distributions.
type Summary struct {
	Total      int
	Calculable int
	ByReason   map[pipeline.Reason]int

	// Measurements maps a measurement name to its distribution
	Measurements map[string]Stats
}

// SummaryMeasurements are the measurements summarized by Summarize.
var SummaryMeasurements = []string{
	pipeline.SeptumAngleName,
	pipeline.EIRVName,
	pipeline.EILVEpiName,
	pipeline.EILVEndoName,
	pipeline.AreaRVName,
	pipeline.AreaLVEndoName,
}

// Summarize counts results per outcome and describes SummaryMeasurements.
func Summarize(results []pipeline.Result) (Summary, error) {
	s := Summary{
		Total:        len(results),
		ByReason:     make(map[pipeline.Reason]int),
		Measurements: make(map[string]Stats),
	}

	values := make(map[string][]float64)
	for _, r := range results {
		if !r.Calculable {
			s.ByReason[r.Reason]++
			continue
		}
		s.Calculable++
		for _, name := range SummaryMeasurements {
			if v, ok := r.Lookup(name); ok && !math.IsNaN(v.Scalar) {
				values[name] = append(values[name], v.Scalar)
			}
		}
	}

	for _, name := range SummaryMeasurements {
		data := stats.LoadRawData(values[name])
		if data.Len() < 1 {
			continue
		}

		var st Stats
		var err error
		st.N = data.Len()
		if st.Mean, err = data.Mean(); err != nil {
			return s, fmt.Errorf("%s: %w", name, err)
		}
		if st.StdDev, err = data.StandardDeviation(); err != nil {
			return s, fmt.Errorf("%s: %w", name, err)
		}
		if st.Median, err = data.Median(); err != nil {
			return s, fmt.Errorf("%s: %w", name, err)
		}
		s.Measurements[name] = st
	}
	return s, nil
}

// NonCalculable is the number of slices without a measurement vector.
func (s Summary) NonCalculable() int {
	return s.Total - s.Calculable
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d slices, %d calculable, %d not calculable\n", s.Total, s.Calculable, s.NonCalculable())
	for _, reason := range []pipeline.Reason{
		pipeline.ReasonUnlocatable,
		pipeline.ReasonDegenerate,
		pipeline.ReasonMissing,
		pipeline.ReasonOther,
	} {
		if n := s.ByReason[reason]; n > 0 {
			fmt.Fprintf(&b, "  %s: %d\n", reason, n)
		}
	}
	for _, name := range SummaryMeasurements {
		st, ok := s.Measurements[name]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s: mean %.3f sd %.3f median %.3f (n=%d)\n", name, st.Mean, st.StdDev, st.Median, st.N)
	}
	return b.String()
}
