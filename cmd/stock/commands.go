package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"liyu1981.xyz/machine-stock/pkg/chart"
	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/metrics"
	"liyu1981.xyz/machine-stock/pkg/models"
	"liyu1981.xyz/machine-stock/pkg/stock"
)

type session struct {
	stock *stock.Stock
	close func() error
}

// openSession loads the inventory. A store that cannot be read ends the
// command, so a later save never overwrites data that failed to load.
func openSession(cfg config, out io.Writer) (*session, error) {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	s := stock.New(store).WithServices(stock.ServiceOpts{Notifier: newConsoleNotifier(out)})
	if err := s.Load(); err != nil {
		releaseStore(closeStore)
		return nil, silentError{err}
	}
	return &session{stock: s, close: closeStore}, nil
}

// releaseStore closes the store, logging a failure since the command result
// is already decided.
func releaseStore(closeStore func() error) {
	if err := closeStore(); err != nil {
		common.GetLoggerWith(common.LoggerNameCLI).Warn("Failed to close store", zap.Error(err))
	}
}

func newFlagSet(name string, cfg *config, out io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(out)
	cfg.addFlags(flags)
	return flags
}

func addInputFlags(flags *pflag.FlagSet, raw *models.RawInput) {
	flags.StringVar(&raw.ID, "id", "", "machine ID")
	flags.StringVar(&raw.Name, "name", "", "machine name")
	flags.StringVar(&raw.Duration, "duration", "", "operating duration in hours")
	flags.StringVar(&raw.Performance, "performance", "", "performance metric")
}

// withSession parses flags, opens a session, runs fn and saves when fn
// reports a change.
func withSession(flags *pflag.FlagSet, args []string, cfg *config, out io.Writer, fn func(s *stock.Stock) (bool, error)) error {
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	sess, err := openSession(*cfg, out)
	if err != nil {
		return err
	}
	defer releaseStore(sess.close)

	changed, err := fn(sess.stock)
	if err != nil {
		return err
	}
	if changed {
		if err := sess.stock.Save(); err != nil {
			return silentError{err}
		}
	}
	return nil
}

func runList(args []string, out io.Writer) error {
	cfg := loadConfig()
	flags := newFlagSet("list", &cfg, out)

	return withSession(flags, args, &cfg, out, func(s *stock.Stock) (bool, error) {
		return false, renderTable(out, s.Inventory.List())
	})
}

func runAdd(args []string, out io.Writer) error {
	cfg := loadConfig()
	flags := newFlagSet("add", &cfg, out)
	var raw models.RawInput
	addInputFlags(flags, &raw)

	return withSession(flags, args, &cfg, out, func(s *stock.Stock) (bool, error) {
		m, err := s.AddMachine(raw)
		if err != nil {
			return false, silentError{err}
		}
		fmt.Fprintf(out, "Added row %d: %s (%s)\n", s.Inventory.Len(), m.Name, m.State)
		return true, nil
	})
}

// selectRow selects the 1-based row; 0 leaves nothing selected.
func selectRow(s *stock.Stock, row int) error {
	if row == 0 {
		return nil
	}
	if err := s.SelectMachine(row - 1); err != nil {
		return silentError{err}
	}
	return nil
}

func runUpdate(args []string, out io.Writer) error {
	cfg := loadConfig()
	flags := newFlagSet("update", &cfg, out)
	var raw models.RawInput
	var row int
	flags.IntVar(&row, "row", 0, "row number shown by list")
	addInputFlags(flags, &raw)

	return withSession(flags, args, &cfg, out, func(s *stock.Stock) (bool, error) {
		if err := selectRow(s, row); err != nil {
			return false, err
		}
		m, err := s.UpdateMachine(raw)
		if err != nil {
			return false, silentError{err}
		}
		fmt.Fprintf(out, "Updated row %d: %s (%s)\n", row, m.Name, m.State)
		return true, nil
	})
}

func runDelete(args []string, out io.Writer) error {
	cfg := loadConfig()
	flags := newFlagSet("delete", &cfg, out)
	var row int
	flags.IntVar(&row, "row", 0, "row number shown by list")

	return withSession(flags, args, &cfg, out, func(s *stock.Stock) (bool, error) {
		if err := selectRow(s, row); err != nil {
			return false, err
		}
		m, err := s.DeleteMachine()
		if err != nil {
			return false, silentError{err}
		}
		fmt.Fprintf(out, "Deleted row %d: %s\n", row, m.Name)
		return true, nil
	})
}

func chartSink(format, path string, out io.Writer) (chart.Sink, error) {
	switch format {
	case "term":
		return chart.NewTerminalSink(out), nil
	case "xlsx":
		return &chart.XLSXSink{Path: path}, nil
	case "pdf":
		return &chart.PDFSink{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown chart format %q", format)
	}
}

func runChart(args []string, out io.Writer) error {
	cfg := loadConfig()
	flags := newFlagSet("chart", &cfg, out)
	var format, path string
	flags.StringVar(&format, "format", "term", "output: term, xlsx or pdf")
	flags.StringVar(&path, "out", "", "output file for xlsx and pdf")

	return withSession(flags, args, &cfg, out, func(s *stock.Stock) (bool, error) {
		if flags.NArg() != 1 {
			return false, errors.New("chart needs exactly one kind: machine or state")
		}
		kind := flags.Arg(0)
		if path == "" {
			path = filepath.Clean(fmt.Sprintf("%s_chart.%s", kind, format))
		}

		sink, err := chartSink(format, path, out)
		if err != nil {
			return false, err
		}

		switch kind {
		case "machine":
			err = s.PerformanceChart(sink)
		case "state":
			err = s.StateChart(sink)
		default:
			return false, fmt.Errorf("unknown chart kind %q", kind)
		}
		if errors.Is(err, stock.ErrNoData) {
			return false, nil
		}
		if err != nil {
			return false, silentError{err}
		}
		if format != "term" {
			fmt.Fprintf(out, "Chart written to %s\n", path)
		}
		return false, nil
	})
}

func runMetrics(args []string, out io.Writer) error {
	cfg := loadConfig()
	flags := newFlagSet("metrics", &cfg, out)
	var path string
	flags.StringVar(&path, "out", "machine_stock.prom", "textfile to write")

	return withSession(flags, args, &cfg, out, func(s *stock.Stock) (bool, error) {
		if err := metrics.WriteTextfile(path, s.Inventory); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Metrics written to %s\n", path)
		return false, nil
	})
}
