// Package charts renders interactive HTML charts of a game: the score
// progression over the play log and the per-quarter scoring comparison.
package charts

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
	"github.com/lukia82-netizen/LALK-Stats/internal/stats"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string // Chart title
	Subtitle   string // Chart subtitle
	Width      string // Chart width (e.g., "900px")
	Height     string // Chart height (e.g., "500px")
	Theme      string // Chart theme
	ShowLegend bool   // Show legend
	Smooth     bool   // Smooth line (for line charts)
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Smooth:     false,
	}
}

// RenderScoreProgression writes a line chart of both running scores over
// the play log to an HTML file.
func RenderScoreProgression(s *game.State, config ChartConfig, outputPath string) error {
	if config.Title == "" {
		config.Title = fmt.Sprintf("%s vs %s", s.TeamA.Name, s.TeamB.Name)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
	)

	xLabels := make([]string, 0, len(s.Log)+1)
	seriesA := make([]opts.LineData, 0, len(s.Log)+1)
	seriesB := make([]opts.LineData, 0, len(s.Log)+1)
	xLabels = append(xLabels, "start")
	seriesA = append(seriesA, opts.LineData{Value: 0})
	seriesB = append(seriesB, opts.LineData{Value: 0})
	for i, ev := range s.Log {
		a, b := stats.ScoreAt(s.Log, i)
		xLabels = append(xLabels, fmt.Sprintf("%s %s", game.PeriodLabel(ev.Period), ev.ClockTime))
		seriesA = append(seriesA, opts.LineData{Value: a})
		seriesB = append(seriesB, opts.LineData{Value: b})
	}

	line.SetXAxis(xLabels).
		AddSeries(s.TeamA.Name, seriesA).
		AddSeries(s.TeamB.Name, seriesB).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				Smooth: opts.Bool(config.Smooth),
			}),
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	return renderToFile(line, outputPath)
}

// RenderQuarterScores writes a bar chart comparing both teams' scoring
// per period to an HTML file.
func RenderQuarterScores(s *game.State, config ChartConfig, outputPath string) error {
	if config.Title == "" {
		config.Title = "Scoring by Period"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
	)

	var xLabels []string
	var seriesA, seriesB []opts.BarData
	for period := 1; period <= s.Period; period++ {
		xLabels = append(xLabels, game.PeriodLabel(period))
		seriesA = append(seriesA, opts.BarData{Value: stats.QuarterScore(s.Log, game.TeamA, period)})
		seriesB = append(seriesB, opts.BarData{Value: stats.QuarterScore(s.Log, game.TeamB, period)})
	}

	bar.SetXAxis(xLabels).
		AddSeries(s.TeamA.Name, seriesA).
		AddSeries(s.TeamB.Name, seriesB)

	return renderToFile(bar, outputPath)
}

type renderer interface {
	Render(w io.Writer) error
}

func renderToFile(chart renderer, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
