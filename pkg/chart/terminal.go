package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultBarWidth = 40

// TerminalSink prints horizontal bars. Alert bars use the alert color.
type TerminalSink struct {
	out      io.Writer
	width    int
	title    lipgloss.Style
	axis     lipgloss.Style
	okBar    lipgloss.Style
	alertBar lipgloss.Style
}

func NewTerminalSink(out io.Writer) *TerminalSink {
	r := lipgloss.NewRenderer(out)
	return &TerminalSink{
		out:      out,
		width:    defaultBarWidth,
		title:    r.NewStyle().Bold(true),
		axis:     r.NewStyle().Faint(true),
		okBar:    r.NewStyle().Foreground(lipgloss.Color("#5fafff")),
		alertBar: r.NewStyle().Foreground(lipgloss.Color("#ff8787")),
	}
}

// WithWidth sets the length of the longest bar in cells.
func (s *TerminalSink) WithWidth(width int) *TerminalSink {
	if width > 0 {
		s.width = width
	}
	return s
}

func (s *TerminalSink) Render(c Chart) error {
	var b strings.Builder

	b.WriteString(s.title.Render(c.Title))
	b.WriteString("\n")

	labelWidth := lipgloss.Width(c.XLabel)
	for _, bar := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
	}

	b.WriteString(s.axis.Render(pad(c.XLabel, labelWidth) + " | " + c.YLabel))
	b.WriteString("\n")

	top := c.MaxValue()
	for _, bar := range c.Bars {
		style := s.okBar
		if bar.Alert {
			style = s.alertBar
		}

		fmt.Fprintf(&b, "%s | %s %s\n",
			pad(bar.Label, labelWidth),
			style.Render(strings.Repeat("█", s.barLength(bar.Value, top))),
			strconv.FormatFloat(bar.Value, 'f', -1, 64),
		)
	}

	_, err := io.WriteString(s.out, b.String())
	return err
}

func (s *TerminalSink) barLength(value, top float64) int {
	if top <= 0 || value <= 0 || math.IsNaN(value) {
		return 0
	}
	return int(math.Round(value / top * float64(s.width)))
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
