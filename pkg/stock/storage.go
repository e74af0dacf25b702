package stock

import (
	"go.uber.org/zap"
	"liyu1981.xyz/machine-stock/pkg/common"
)

const (
	titleSuccess = "Success"

	msgSaved      = "Data saved successfully"
	msgSaveFailed = "Unable to save file"
	msgLoadFailed = "Error while loading data"
)

// Load replaces the inventory with the stored set. When the store fails the
// current inventory is left as it was.
func (s *Stock) Load() error {
	records, err := s.Store.Load()
	if err != nil {
		logger(common.LoggerCategoryLoad).Error("Load failed, keeping current inventory", zap.Error(err))
		s.Notifier.Error(titleError, msgLoadFailed)
		return err
	}

	s.Inventory.ReplaceAll(records)
	return nil
}

// Save flushes every row to the store.
func (s *Stock) Save() error {
	records := s.Inventory.List()
	if err := s.Store.Save(records); err != nil {
		logger(common.LoggerCategorySave).Error("Save failed", zap.Error(err))
		s.Notifier.Error(titleError, msgSaveFailed)
		return err
	}

	s.Notifier.Info(titleSuccess, msgSaved)
	return nil
}
