package inventory

import (
	"errors"

	"go.uber.org/zap"
	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/models"
)

var (
	ErrNoSelection     = errors.New("no machine selected")
	ErrIndexOutOfRange = errors.New("row index out of range")
)

// Inventory is the ordered set of machines for one session. At most one row
// is selected at a time; Update and Delete act only on that row. The zero
// value is an empty inventory with nothing selected.
type Inventory struct {
	records []models.MachineRecord
	// selected row plus one, 0 when nothing is selected
	selected int
}

func New(records ...models.MachineRecord) *Inventory {
	inv := &Inventory{}
	inv.install(records)
	return inv
}

func logger(category string) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameInventory,
		zap.String(common.LoggerFieldCategory, category),
	)
}

func (inv *Inventory) install(records []models.MachineRecord) {
	inv.records = make([]models.MachineRecord, len(records))
	for i, r := range records {
		inv.records[i] = r.WithDerivedState()
	}
}

func (inv *Inventory) Len() int {
	return len(inv.records)
}

// List returns a copy of the records in display order.
func (inv *Inventory) List() []models.MachineRecord {
	out := make([]models.MachineRecord, len(inv.records))
	copy(out, inv.records)
	return out
}

func (inv *Inventory) Add(record models.MachineRecord) {
	record = record.WithDerivedState()
	inv.records = append(inv.records, record)

	logger(common.LoggerCategoryRecord).Info("Machine added",
		zap.Int("row", len(inv.records)-1),
		zap.Reflect("machine", record))
}

func (inv *Inventory) Select(index int) error {
	if index < 0 || index >= len(inv.records) {
		return ErrIndexOutOfRange
	}
	inv.selected = index + 1

	logger(common.LoggerCategorySelection).Debug("Row selected", zap.Int("row", index))
	return nil
}

func (inv *Inventory) ClearSelection() {
	inv.selected = 0
}

func (inv *Inventory) Selected() (int, bool) {
	if inv.selected == 0 {
		return 0, false
	}
	return inv.selected - 1, true
}

func (inv *Inventory) SelectedRecord() (models.MachineRecord, bool) {
	idx, ok := inv.Selected()
	if !ok {
		return models.MachineRecord{}, false
	}
	return inv.records[idx], true
}

// Update replaces every field of the selected row. The selection stays on it.
func (inv *Inventory) Update(record models.MachineRecord) error {
	idx, ok := inv.Selected()
	if !ok {
		return ErrNoSelection
	}

	record = record.WithDerivedState()
	previous := inv.records[idx]
	inv.records[idx] = record

	logger(common.LoggerCategoryRecord).Info("Machine updated",
		zap.Int("row", idx),
		zap.Reflect("previous", previous),
		zap.Reflect("machine", record))
	return nil
}

// Delete removes the selected row and clears the selection.
func (inv *Inventory) Delete() (models.MachineRecord, error) {
	idx, ok := inv.Selected()
	if !ok {
		return models.MachineRecord{}, ErrNoSelection
	}

	removed := inv.records[idx]
	inv.records = append(inv.records[:idx], inv.records[idx+1:]...)
	inv.selected = 0

	logger(common.LoggerCategoryRecord).Info("Machine deleted",
		zap.Int("row", idx),
		zap.Reflect("machine", removed))
	return removed, nil
}

func (inv *Inventory) Clear() {
	inv.records = nil
	inv.selected = 0
}

// ReplaceAll discards the current rows and installs records in their place.
func (inv *Inventory) ReplaceAll(records []models.MachineRecord) {
	inv.install(records)
	inv.selected = 0

	logger(common.LoggerCategoryLoad).Info("Inventory replaced", zap.Int("count", len(records)))
}
