package chart

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Data"

// XLSXSink writes the chart data and a native column chart to a workbook.
type XLSXSink struct {
	Path string
}

func (s *XLSXSink) Render(c Chart) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", xlsxSheet)

	_ = f.SetCellValue(xlsxSheet, "A1", c.XLabel)
	_ = f.SetCellValue(xlsxSheet, "B1", c.YLabel)
	for i, bar := range c.Bars {
		row := i + 2
		_ = f.SetCellValue(xlsxSheet, fmt.Sprintf("A%d", row), bar.Label)
		_ = f.SetCellValue(xlsxSheet, fmt.Sprintf("B%d", row), bar.Value)
	}

	if len(c.Bars) > 0 {
		last := len(c.Bars) + 1
		err := f.AddChart(xlsxSheet, "D2", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       c.Title,
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", xlsxSheet, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", xlsxSheet, last),
			}},
		})
		if err != nil {
			return fmt.Errorf("add chart: %w", err)
		}
	}

	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("save workbook %s: %w", s.Path, err)
	}
	return nil
}
