package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// anglePalette gives each of the five posture angles a stable color so
// consecutive reports stay comparable.
var anglePalette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255},
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 255},
}

// SavePNG writes all angle series onto a single static plot for print and
// export. Fails rather than writing an empty image when no series carry
// samples.
func SavePNG(path string, series map[string][]TimedValue) error {
	p := plot.New()
	p.Title.Text = "Posture Angles"
	p.X.Label.Text = "t (s)"
	p.Y.Label.Text = "angle (deg)"

	plotted := 0
	for i, name := range orderedNames(series) {
		sv := series[name]
		if len(sv) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(sv))
		for j, v := range sv {
			pts[j] = plotter.XY{X: v.T, Y: v.Value}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("build %s line: %w", name, err)
		}
		line.Color = anglePalette[i%len(anglePalette)]
		line.Width = vg.Points(1)

		p.Add(line)
		p.Legend.Add(name, line)
		plotted++
	}

	if plotted == 0 {
		return fmt.Errorf("no angle samples to plot")
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save angle plot: %w", err)
	}

	return nil
}
