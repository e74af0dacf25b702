package stock

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/inventory"
	"liyu1981.xyz/machine-stock/pkg/models"
)

const (
	titleError   = "Error"
	titleWarning = "Warning"

	msgInvalidData = "Invalid data.\nPlease check ID, duration and performance."
	msgNoSelection = "No machine selected"
)

func (s *Stock) notifyInvalid(err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		logger(common.LoggerCategoryRecord).Info("Rejected machine input", zap.Strings("fields", verr.Fields))
	}
	s.Notifier.Error(titleError, msgInvalidData)
}

func (s *Stock) AddMachine(raw models.RawInput) (models.MachineRecord, error) {
	record, err := models.Validate(raw)
	if err != nil {
		s.notifyInvalid(err)
		return models.MachineRecord{}, err
	}

	s.Inventory.Add(record)
	return record, nil
}

// SelectMachine selects the row at index (0-based).
func (s *Stock) SelectMachine(index int) error {
	if err := s.Inventory.Select(index); err != nil {
		s.Notifier.Warning(titleWarning, fmt.Sprintf("No machine at row %d", index+1))
		return err
	}
	return nil
}

// UpdateMachine replaces the selected row with raw. Selection is checked
// before the input is validated.
func (s *Stock) UpdateMachine(raw models.RawInput) (models.MachineRecord, error) {
	if _, ok := s.Inventory.Selected(); !ok {
		s.Notifier.Warning(titleWarning, msgNoSelection)
		return models.MachineRecord{}, inventory.ErrNoSelection
	}

	record, err := models.Validate(raw)
	if err != nil {
		s.notifyInvalid(err)
		return models.MachineRecord{}, err
	}

	if err := s.Inventory.Update(record); err != nil {
		return models.MachineRecord{}, err
	}
	return record, nil
}

func (s *Stock) DeleteMachine() (models.MachineRecord, error) {
	removed, err := s.Inventory.Delete()
	if errors.Is(err, inventory.ErrNoSelection) {
		s.Notifier.Warning(titleWarning, msgNoSelection)
	}
	return removed, err
}
