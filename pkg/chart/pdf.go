package chart

import (
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// page geometry in mm, A4 landscape
const (
	pdfLeft   = 25.0
	pdfRight  = 272.0
	pdfTop    = 30.0
	pdfBottom = 170.0
)

// PDFSink draws a vertical bar chart on a single landscape page.
type PDFSink struct {
	Path string
}

func (s *PDFSink) Render(c Chart) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(c.Title), "", 1, "C", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(pdfLeft, pdfTop, pdfLeft, pdfBottom)
	pdf.Line(pdfLeft, pdfBottom, pdfRight, pdfBottom)

	pdf.SetFont("Arial", "", 9)
	pdf.Text(pdfLeft, pdfTop-3, tr(c.YLabel))
	pdf.Text(pdfRight-pdf.GetStringWidth(c.XLabel), pdfBottom+14, tr(c.XLabel))

	if n := len(c.Bars); n > 0 {
		top := c.MaxValue()
		slot := (pdfRight - pdfLeft) / float64(n)
		barWidth := slot * 0.6

		for i, bar := range c.Bars {
			x := pdfLeft + float64(i)*slot + (slot-barWidth)/2

			height := 0.0
			if top > 0 && bar.Value > 0 {
				height = bar.Value / top * (pdfBottom - pdfTop - 10)
			}

			if bar.Alert {
				pdf.SetFillColor(255, 135, 135)
			} else {
				pdf.SetFillColor(95, 175, 255)
			}
			pdf.Rect(x, pdfBottom-height, barWidth, height, "F")

			value := strconv.FormatFloat(bar.Value, 'f', -1, 64)
			pdf.Text(x+(barWidth-pdf.GetStringWidth(value))/2, pdfBottom-height-2, value)

			label := tr(bar.Label)
			pdf.Text(x+(barWidth-pdf.GetStringWidth(label))/2, pdfBottom+6, label)
		}
	}

	return pdf.OutputFileAndClose(s.Path)
}
