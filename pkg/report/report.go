// Package report writes pipeline results as CSV tables.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"shortcardiac/pkg/batch"
	"shortcardiac/pkg/pipeline"
)

// D0Name is the derived RV diameter column: ventral profile at 0° plus 180°.
const D0Name = "D0 [mm]"

// Header returns the column names for results produced with names.
func Header(names []string) []string {
	header := append([]string{"slice", "calculable", "reason"}, names...)
	if hasD0(names) {
		header = append(header, D0Name)
	}
	return header
}

func hasD0(names []string) bool {
	var zero, half bool
	for _, n := range names {
		switch n {
		case pipeline.RVVentralName(0):
			zero = true
		case pipeline.RVVentralName(180):
			half = true
		}
	}
	return zero && half
}

// Row formats one result. Non-calculable results keep every measurement
// cell empty.
func Row(r pipeline.Result) []string {
	row := []string{r.ID, strconv.FormatBool(r.Calculable), string(r.Reason)}
	d0 := hasD0(r.Names)

	if !r.Calculable {
		n := len(r.Names)
		if d0 {
			n++
		}
		return append(row, make([]string, n)...)
	}

	for _, v := range r.Values {
		row = append(row, v.String())
	}
	if d0 {
		a, _ := r.Lookup(pipeline.RVVentralName(0))
		b, _ := r.Lookup(pipeline.RVVentralName(180))
		row = append(row, formatFloat(a.Scalar+b.Scalar))
	}
	return row
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Write writes a header and one row per result. All results must come from
// the same run.
func Write(w io.Writer, results []pipeline.Result) error {
	out := gocsv.DefaultCSVWriter(w)

	var names []string
	if len(results) > 0 {
		names = results[0].Names
	}
	if err := out.Write(Header(names)); err != nil {
		return pfx.Err(err)
	}

	for _, r := range results {
		if len(r.Names) != len(names) {
			return fmt.Errorf("slice %s: %d columns, expected %d", r.ID, len(r.Names), len(names))
		}
		if err := out.Write(Row(r)); err != nil {
			return pfx.Err(err)
		}
	}

	out.Flush()
	return pfx.Err(out.Error())
}

// WriteFile writes results to path.
func WriteFile(path string, results []pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	if err := Write(f, results); err != nil {
		f.Close()
		return err
	}
	return pfx.Err(f.Close())
}

// SummaryRow is one line of the summary table.
type SummaryRow struct {
	Item   string  `csv:"item"`
	N      int     `csv:"n"`
	Mean   string  `csv:"mean"`
	StdDev string  `csv:"sd"`
	Median string  `csv:"median"`
	Share  float64 `csv:"share"`
}

// SummaryRows flattens a batch summary into outcome counts followed by the
// measurement distributions.
func SummaryRows(s batch.Summary) []*SummaryRow {
	share := func(n int) float64 {
		if s.Total == 0 {
			return 0
		}
		return float64(n) / float64(s.Total)
	}

	rows := []*SummaryRow{
		{Item: "total", N: s.Total, Share: share(s.Total)},
		{Item: "calculable", N: s.Calculable, Share: share(s.Calculable)},
	}
	for _, reason := range []pipeline.Reason{
		pipeline.ReasonUnlocatable,
		pipeline.ReasonDegenerate,
		pipeline.ReasonMissing,
		pipeline.ReasonOther,
	} {
		rows = append(rows, &SummaryRow{Item: string(reason), N: s.ByReason[reason], Share: share(s.ByReason[reason])})
	}
	for _, name := range batch.SummaryMeasurements {
		st, ok := s.Measurements[name]
		if !ok {
			continue
		}
		rows = append(rows, &SummaryRow{
			Item:   name,
			N:      st.N,
			Mean:   formatFloat(st.Mean),
			StdDev: formatFloat(st.StdDev),
			Median: formatFloat(st.Median),
			Share:  share(st.N),
		})
	}
	return rows
}

// WriteSummary writes the summary table to w.
func WriteSummary(w io.Writer, s batch.Summary) error {
	return pfx.Err(gocsv.Marshal(SummaryRows(s), w))
}
