package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders the full report page: a coverage bar chart followed by
// one line chart per angle series, in canonical angle order.
func WriteHTML(w io.Writer, summary RunSummary, series map[string][]TimedValue) error {
	page := components.NewPage()
	page.AddCharts(coverageChart(summary))

	for _, name := range orderedNames(series) {
		sv := series[name]
		if len(sv) == 0 {
			continue
		}
		page.AddCharts(angleChart(name, sv))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report page: %w", err)
	}

	return nil
}

// coverageChart shows how many frames carried each hand combination. The
// subtitle doubles as the report header with the run identity and height.
func coverageChart(summary RunSummary) *charts.Bar {
	x := []string{"both hands", "left only", "right only", "head only"}
	y := []opts.BarData{
		{Value: summary.BothHands},
		{Value: summary.LeftOnly},
		{Value: summary.RightOnly},
		{Value: summary.HeadOnly()},
	}

	subtitle := fmt.Sprintf("%s, frames=%d", summary.Title, summary.Frames)
	if summary.UserHeightM > 0 {
		subtitle = fmt.Sprintf("%s, height=%.2fm, frames=%d", summary.Title, summary.UserHeightM, summary.Frames)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Posture Report", Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Joint Coverage",
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("frames", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	return bar
}

// angleChart plots one angle over capture time with its summary stats in
// the subtitle.
func angleChart(name string, series []TimedValue) *charts.Line {
	xs := make([]string, len(series))
	ys := make([]opts.LineData, len(series))
	for i, v := range series {
		xs[i] = fmt.Sprintf("%.2f", v.T)
		ys[i] = opts.LineData{Value: v.Value}
	}

	st := Stats(series)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    name,
			Subtitle: fmt.Sprintf("n=%d mean=%.1f° stddev=%.1f° range=[%.1f°, %.1f°]", st.Count, st.Mean, st.StdDev, st.Min, st.Max),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "angle (°)"}),
	)
	line.SetXAxis(xs).
		AddSeries(name, ys,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		)

	return line
}
