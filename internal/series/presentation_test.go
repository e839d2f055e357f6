package series_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weather-explorer/internal/models"
	"weather-explorer/internal/series"
)

func TestPresentationFor(t *testing.T) {
	tests := []struct {
		kind   models.MetricKind
		unit   string
		style  series.RenderStyle
		smooth bool
	}{
		{models.Temperature, "°C", series.StyleLine, true},
		{models.WindSpeed, "m/s", series.StyleLine, true},
		{models.Precipitation, "mm", series.StyleBar, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := series.PresentationFor(tt.kind)
			assert.Equal(t, tt.unit, p.Unit)
			assert.Equal(t, tt.style, p.Style)
			assert.Equal(t, tt.smooth, p.Smooth)
			assert.NotEmpty(t, p.Label)
		})
	}

	assert.True(t, series.PresentationFor(models.Temperature).DashedAxis)
	assert.Equal(t, "Temperature(°C)", series.PresentationFor(models.Temperature).AxisName())
	assert.Equal(t, "2.5mm", series.PresentationFor(models.Precipitation).FormatValue(2.5))
}

func TestTooltip(t *testing.T) {
	temp := models.DisplayPoint{Time: "2025/06/01 00:00", Value: 21.5}
	assert.Equal(t, "2025/06/01 00:00<br/>Temperature: 21.5000°C",
		series.Tooltip(temp, series.PresentationFor(models.Temperature)))

	direction := 225.0
	wind := models.DisplayPoint{Time: "2025/06/01 06:00", Value: 1.4142, WindDirection: &direction}
	tip := series.Tooltip(wind, series.PresentationFor(models.WindSpeed))

	assert.Contains(t, tip, "Wind speed: 1.4142m/s")
	assert.Contains(t, tip, "rotate(225deg)")
	assert.Contains(t, tip, "225.0°")
}
