package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"liyu1981.xyz/machine-stock/pkg/models"
	"liyu1981.xyz/machine-stock/pkg/persistence"
	"liyu1981.xyz/machine-stock/pkg/stock"
)

var tableHeader = []string{"#", "ID", "Machine", "Duration (h)", "Performance", "State"}

type styles struct {
	header lipgloss.Style
	alert  lipgloss.Style
	info   lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header: r.NewStyle().Bold(true),
		alert:  r.NewStyle().Background(lipgloss.Color("#ffcccc")).Foreground(lipgloss.Color("#000000")),
		info:   r.NewStyle().Foreground(lipgloss.Color("#5fd75f")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("#ffd75f")),
		err:    r.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true),
	}
}

// consoleNotifier prints notifications and also keeps them in the log.
type consoleNotifier struct {
	out    io.Writer
	styles styles
	log    stock.Notifier
}

func newConsoleNotifier(out io.Writer) *consoleNotifier {
	return &consoleNotifier{out: out, styles: newStyles(out), log: stock.NewLogNotifier()}
}

func (n *consoleNotifier) print(style lipgloss.Style, title, message string) {
	fmt.Fprintf(n.out, "%s %s\n", style.Render(title+":"), strings.ReplaceAll(message, "\n", " "))
}

func (n *consoleNotifier) Info(title, message string) {
	n.log.Info(title, message)
	n.print(n.styles.info, title, message)
}

func (n *consoleNotifier) Warning(title, message string) {
	n.log.Warning(title, message)
	n.print(n.styles.warn, title, message)
}

func (n *consoleNotifier) Error(title, message string) {
	n.log.Error(title, message)
	n.print(n.styles.err, title, message)
}

func tableRow(row int, m models.MachineRecord) []string {
	return []string{
		strconv.Itoa(row),
		strconv.Itoa(m.ID),
		// newlines in names would break the row
		strings.ReplaceAll(m.Name, "\n", " "),
		strconv.Itoa(m.DurationHours),
		persistence.FormatPerformance(m.Performance),
		string(m.State),
	}
}

// renderTable prints the inventory with 1-based row numbers. Alert rows are
// highlighted.
func renderTable(w io.Writer, records []models.MachineRecord) error {
	st := newStyles(w)

	rows := make([][]string, len(records))
	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = lipgloss.Width(h)
	}
	for i, m := range records {
		rows[i] = tableRow(i+1, m)
		for j, cell := range rows[i] {
			widths[j] = max(widths[j], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	b.WriteString(st.header.Render(joinCells(tableHeader, widths)))
	b.WriteString("\n")
	for i, row := range rows {
		line := joinCells(row, widths)
		if records[i].IsAlert() {
			line = st.alert.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(records) == 0 {
		b.WriteString("(no machines)\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = cell + strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}
