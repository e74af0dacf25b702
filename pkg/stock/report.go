package stock

import (
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/machine-stock/pkg/chart"
	"liyu1981.xyz/machine-stock/pkg/common"
)

const (
	titleInfo = "Info"

	msgNoData       = "No data available"
	msgRenderFailed = "Unable to render chart"
)

// PerformanceChart draws one bar per machine. An empty inventory is reported
// instead of drawn.
func (s *Stock) PerformanceChart(sink chart.Sink) error {
	if s.Inventory.Len() == 0 {
		s.Notifier.Info(titleInfo, msgNoData)
		return ErrNoData
	}
	return s.render(sink, chart.PerformanceChart(s.Inventory.PerformanceByMachine()))
}

// StateChart draws the machine count per state, zero bars included.
func (s *Stock) StateChart(sink chart.Sink) error {
	return s.render(sink, chart.StateChart(s.Inventory.CountByState()))
}

func (s *Stock) render(sink chart.Sink, c chart.Chart) error {
	log := logger(common.LoggerCategoryChart).With(zap.String("chart", c.Title))

	if err := sink.Render(c); err != nil {
		log.Error("Failed to render chart", zap.Error(err))
		s.Notifier.Error(titleError, msgRenderFailed)
		return fmt.Errorf("render %q: %w", c.Title, err)
	}

	log.Info("Chart rendered", zap.Int("bars", len(c.Bars)))
	return nil
}
