package export

import (
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"eiborservice/internal/repository"
)

const (
	chartWidth  = 1280
	chartHeight = 720
	rangePad    = 0.05
)

var (
	lineColor = drawing.ColorFromHex("1d4ed8")
	fillColor = drawing.ColorFromHex("1d4ed8").WithAlpha(48)
)

// RenderHistoryPNG draws the rate history of one tenor as a filled line chart.
// rows must be in ascending date order.
func RenderHistoryPNG(w io.Writer, tenor repository.Tenor, rows []repository.RateObservation) error {
	if err := checkRows(rows); err != nil {
		return err
	}

	x := make([]time.Time, len(rows))
	y := make([]float64, len(rows))
	lo, hi := rows[0].Rate.InexactFloat64(), rows[0].Rate.InexactFloat64()
	for i, r := range rows {
		x[i] = r.RateDate
		y[i] = r.Rate.InexactFloat64()
		lo = min(lo, y[i])
		hi = max(hi, y[i])
	}

	rateFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.4f")
	}
	graph := chart.Chart{
		Title:  fmt.Sprintf("EIBOR %s", tenor),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Rate (%)",
			ValueFormatter: rateFormatter,
			Range: &chart.ContinuousRange{
				Min: lo - rangePad,
				Max: hi + rangePad,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    string(tenor),
				XValues: x,
				YValues: y,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					FillColor:   fillColor,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", tenor, err)
	}
	return nil
}
