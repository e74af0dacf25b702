package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"liyu1981.xyz/machine-stock/pkg/inventory"
	"liyu1981.xyz/machine-stock/pkg/models"
)

// InventoryView is the subset of inventory.Inventory the collector reads.
type InventoryView interface {
	CountByState() map[models.State]int
	PerformanceByMachine() []inventory.MachinePerformance
}

// inventoryCollector reports the current inventory on every gather.
type inventoryCollector struct {
	inv             InventoryView
	machinesDesc    *prometheus.Desc
	performanceDesc *prometheus.Desc
}

func newInventoryCollector(inv InventoryView) *inventoryCollector {
	return &inventoryCollector{
		inv: inv,
		machinesDesc: prometheus.NewDesc(
			"machine_stock_machines",
			"Number of machines in the inventory, partitioned by state.",
			[]string{"state"},
			nil,
		),
		performanceDesc: prometheus.NewDesc(
			"machine_stock_performance",
			"Performance of each machine, by table row.",
			[]string{"row", "machine", "state"},
			nil,
		),
	}
}

func (c *inventoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.machinesDesc
	ch <- c.performanceDesc
}

func (c *inventoryCollector) Collect(ch chan<- prometheus.Metric) {
	for state, n := range c.inv.CountByState() {
		ch <- prometheus.MustNewConstMetric(
			c.machinesDesc,
			prometheus.GaugeValue,
			float64(n),
			string(state),
		)
	}
	// names are not unique, the row label keeps series distinct
	for i, p := range c.inv.PerformanceByMachine() {
		ch <- prometheus.MustNewConstMetric(
			c.performanceDesc,
			prometheus.GaugeValue,
			p.Performance,
			fmt.Sprint(i+1),
			p.Name,
			string(p.State),
		)
	}
}

// NewRegistry returns a registry holding only the inventory collector.
func NewRegistry(inv InventoryView) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(newInventoryCollector(inv)); err != nil {
		return nil, err
	}
	return reg, nil
}

// WriteTextfile writes the inventory metrics in the text exposition format,
// for pickup by node_exporter's textfile collector.
func WriteTextfile(path string, inv InventoryView) error {
	reg, err := NewRegistry(inv)
	if err != nil {
		return fmt.Errorf("register collector: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
