package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortcardiac/internal/models"
	"shortcardiac/pkg/batch"
	"shortcardiac/pkg/pipeline"
)

var names = []string{
	pipeline.SeptumAngleName,
	pipeline.RVVentralName(0),
	pipeline.RVVentralName(180),
	pipeline.CenterRVName,
}

func results() []pipeline.Result {
	return []pipeline.Result{
		{
			ID:         "s1",
			Calculable: true,
			Names:      names,
			Values: []pipeline.Value{
				{Scalar: -12.5},
				{Scalar: 20},
				{Scalar: 5.25},
				{Point: models.Point{X: 10, Y: 20.5}, IsPoint: true},
			},
		},
		{ID: "s2", Reason: pipeline.ReasonUnlocatable, Names: names},
	}
}

func TestHeader(t *testing.T) {
	want := []string{"slice", "calculable", "reason", names[0], names[1], names[2], names[3], D0Name}
	if diff := cmp.Diff(want, Header(names)); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	// D0 needs both angles
	assert.NotContains(t, Header(names[:2]), D0Name)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	for _, rec := range records {
		assert.Len(t, rec, len(records[0]))
	}
	assert.Equal(t, []string{"s1", "true", "", "-12.5", "20", "5.25", "(10, 20.5)", "25.25"}, records[1])
	assert.Equal(t, []string{"s2", "false", "unlocatable-reference-points", "", "", "", "", ""}, records[2])
}

func TestWriteRejectsMixedRuns(t *testing.T) {
	rs := results()
	rs[1].Names = names[:2]
	assert.Error(t, Write(&bytes.Buffer{}, rs))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteFile(path, results()))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "slice,calculable,reason,"))
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Equal(t, "slice,calculable,reason\n", buf.String())
}

func TestSummary(t *testing.T) {
	s := batch.Summary{
		Total:      4,
		Calculable: 3,
		ByReason:   map[pipeline.Reason]int{pipeline.ReasonDegenerate: 1},
		Measurements: map[string]batch.Stats{
			pipeline.EIRVName: {N: 3, Mean: 1.5, StdDev: 0.25, Median: 1.4},
		},
	}

	rows := SummaryRows(s)
	require.Len(t, rows, 7)
	assert.Equal(t, "total", rows[0].Item)
	assert.Equal(t, 0.75, rows[1].Share)
	assert.Equal(t, 1, rows[3].N)
	assert.Equal(t, pipeline.EIRVName, rows[6].Item)
	assert.Equal(t, "1.4", rows[6].Median)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "item,n,mean,sd,median,share", lines[0])
	assert.Len(t, lines, 8)
}
