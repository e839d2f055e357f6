package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-explorer/internal/models"
	"weather-explorer/internal/series"
)

func samples(values ...string) []models.Sample {
	out := make([]models.Sample, len(values))
	for i, v := range values {
		out[i] = models.Sample{Timestamp: 1748736000 + int64(i)*21600, Value: models.StringValue(v)}
	}
	return out
}

func TestRender_LineChart(t *testing.T) {
	var buf bytes.Buffer
	s := series.Build(samples("12.5", "14", "13.25", "9"), models.Temperature)

	require.NoError(t, Render(&buf, s, Options{}))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "2025/06/01 00:00")
}

func TestRender_BarChart(t *testing.T) {
	var buf bytes.Buffer
	s := series.Build(samples("0", "0.4", "1.2"), models.Precipitation)

	require.NoError(t, Render(&buf, s, Options{Width: 600, Height: 300}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRender_FlatAndSinglePoint(t *testing.T) {
	tests := []struct {
		name string
		s    series.Series
	}{
		{"flat line", series.Build(samples("5", "5", "5"), models.Temperature)},
		{"single point", series.Build(samples("3,4"), models.WindSpeed)},
		{"all zero bars", series.Build(samples("0", "0"), models.Precipitation)},
		{"single bar", series.Build(samples("2"), models.Precipitation)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.s, Options{}))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestRender_EmptyPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	s := series.Build(nil, models.WindSpeed)

	require.NoError(t, Render(&buf, s, Options{}))
	assert.Contains(t, buf.String(), `width="800" height="400"`)
	assert.Contains(t, buf.String(), "Wind: no data")
}

func TestRender_ClampsSize(t *testing.T) {
	var buf bytes.Buffer
	s := series.Build(nil, models.Temperature)

	require.NoError(t, Render(&buf, s, Options{Width: 2000000, Height: 2000000}))
	assert.Contains(t, buf.String(), `width="4000" height="4000"`)

	assert.Equal(t, Options{Width: 4000, Height: 300}, Options{Width: 5000, Height: 300}.withDefaults())
	assert.Equal(t, Options{Width: DefaultWidth, Height: DefaultHeight}, Options{}.withDefaults())
}

func TestPaddedRange(t *testing.T) {
	lo, hi := paddedRange([]float64{10, 20}, false)
	assert.InDelta(t, 9, lo, 1e-9)
	assert.InDelta(t, 21, hi, 1e-9)

	lo, hi = paddedRange([]float64{5}, false)
	assert.Equal(t, 4.0, lo)
	assert.Equal(t, 6.0, hi)

	lo, hi = paddedRange([]float64{0.5, 2}, true)
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 2.2, hi, 1e-9)

	lo, hi = paddedRange([]float64{0, 0}, true)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestTicks(t *testing.T) {
	labels := make([]string, 44)
	for i := range labels {
		labels[i] = series.FormatTime(1748736000 + int64(i)*21600)
	}

	got := ticks(labels)
	assert.LessOrEqual(t, len(got), maxLabels)
	assert.Equal(t, "2025/06/01 00:00", got[0].Label)

	single := ticks(labels[:1])
	assert.Len(t, single, 2)

	sparse := sparseLabels(labels)
	assert.Equal(t, labels[0], sparse[0])
	assert.Empty(t, sparse[1])
}
