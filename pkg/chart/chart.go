package chart

import (
	"liyu1981.xyz/machine-stock/pkg/inventory"
	"liyu1981.xyz/machine-stock/pkg/models"
)

//go:generate mockgen -source=chart.go -destination=mocks/mock_chart.go -package=mocks

type Bar struct {
	Label string
	Value float64
	Alert bool
}

type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Bars   []Bar
}

// Sink draws a chart somewhere: a terminal, a workbook, a document.
type Sink interface {
	Render(c Chart) error
}

func PerformanceChart(pairs []inventory.MachinePerformance) Chart {
	bars := make([]Bar, len(pairs))
	for i, p := range pairs {
		bars[i] = Bar{Label: p.Name, Value: p.Performance, Alert: p.State == models.StateAlert}
	}
	return Chart{
		Title:  "Performance by machine",
		XLabel: "Machine",
		YLabel: "Performance",
		Bars:   bars,
	}
}

func StateChart(counts map[models.State]int) Chart {
	bars := make([]Bar, 0, len(models.States))
	for _, s := range models.States {
		bars = append(bars, Bar{Label: string(s), Value: float64(counts[s]), Alert: s == models.StateAlert})
	}
	return Chart{
		Title:  "Machines by state",
		XLabel: "State",
		YLabel: "Number of machines",
		Bars:   bars,
	}
}

func (c Chart) MaxValue() float64 {
	var top float64
	for _, b := range c.Bars {
		if b.Value > top {
			top = b.Value
		}
	}
	return top
}
