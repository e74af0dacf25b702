package inventory

import (
	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/models"
)

type MachinePerformance struct {
	Name        string
	Performance float64
	State       models.State
}

// PerformanceByMachine yields one pair per row, in inventory order. Rows that
// share a name are not merged.
func (inv *Inventory) PerformanceByMachine() []MachinePerformance {
	return common.Mapper(inv.records, func(m models.MachineRecord) MachinePerformance {
		return MachinePerformance{Name: m.Name, Performance: m.Performance, State: m.State}
	})
}

// CountByState always carries every state, zero when no row has it.
func (inv *Inventory) CountByState() map[models.State]int {
	counts := make(map[models.State]int, len(models.States))
	for _, s := range models.States {
		counts[s] = 0
	}
	return common.Reducer(inv.records, func(acc map[models.State]int, m models.MachineRecord) map[models.State]int {
		acc[m.State]++
		return acc
	}, counts)
}
