package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineRendersSeries(t *testing.T) {
	out, err := Line(720, 240, []float64{100, 250, 180}, []string{"01", "02", "03"}, LineOpts{Title: "Revenue"})
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "<svg"))
	assert.Contains(t, s, "<title>Revenue</title>")
	assert.Contains(t, s, "stroke-linejoin")
	assert.Contains(t, s, ">02<")
}

func TestLineRejectsMismatchedLabels(t *testing.T) {
	_, err := Line(720, 240, []float64{1, 2}, []string{"only"}, LineOpts{})
	assert.Error(t, err)
}

func TestLineRejectsEmptySeries(t *testing.T) {
	_, err := Line(720, 240, nil, nil, LineOpts{})
	assert.Error(t, err)
}

func TestBarPairedSeries(t *testing.T) {
	out, err := Bar(720, 240,
		[]float64{1000, 1200}, []float64{400, 300},
		[]string{"Jan", "Feb"}, BarOpts{Title: "Income vs Expense"})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<title>Income vs Expense</title>")
	assert.Equal(t, 4, strings.Count(s, "<rect"))
}

func TestBarSingleSeries(t *testing.T) {
	out, err := Bar(720, 240, []float64{5, 7, 3}, nil, []string{"a", "b", "c"}, BarOpts{})
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(out), "<rect"))
}
