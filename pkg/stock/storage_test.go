package stock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/models"
	"liyu1981.xyz/machine-stock/pkg/persistence"
	_ "liyu1981.xyz/machine-stock/pkg/testing"
)

func TestLoadReplacesInventory(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, s, mockStore, _, _ := GetMockStock(t)
	defer ctrl.Finish()

	_, err := s.AddMachine(latheInput)
	require.NoError(t, err)
	require.NoError(t, s.SelectMachine(0))

	loaded := []models.MachineRecord{models.NewMachineRecord(7, "Saw", 3, 40)}
	mockStore.EXPECT().Load().Return(loaded, nil).Times(1)

	require.NoError(t, s.Load())
	assert.Equal(t, loaded, s.Inventory.List())

	_, selected := s.Inventory.Selected()
	assert.False(t, selected)
}

func TestLoadFailureKeepsInventory(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, s, mockStore, mockNotifier, _ := GetMockStock(t)
	defer ctrl.Finish()

	_, err := s.AddMachine(latheInput)
	require.NoError(t, err)
	before := s.Inventory.List()

	loadErr := &persistence.PersistenceError{Op: "load", Line: 3, Err: errors.New("expected 5 fields, got 4")}
	mockStore.EXPECT().Load().Return(nil, loadErr).Times(1)
	mockNotifier.EXPECT().Error("Error", "Error while loading data").Times(1)

	err = s.Load()
	assert.ErrorIs(t, err, persistence.ErrPersistence)
	assert.Equal(t, before, s.Inventory.List())
}

func TestSaveFlushesEverything(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, s, mockStore, mockNotifier, _ := GetMockStock(t)
	defer ctrl.Finish()

	_, err := s.AddMachine(latheInput)
	require.NoError(t, err)
	_, err = s.AddMachine(pressInput)
	require.NoError(t, err)

	mockStore.EXPECT().Save(gomock.Eq(s.Inventory.List())).Return(nil).Times(1)
	mockNotifier.EXPECT().Info("Success", "Data saved successfully").Times(1)

	require.NoError(t, s.Save())
}

func TestSaveFailure(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, s, mockStore, mockNotifier, _ := GetMockStock(t)
	defer ctrl.Finish()

	mockStore.EXPECT().Save(gomock.Any()).Return(&persistence.PersistenceError{Op: "save", Err: os.ErrPermission}).Times(1)
	mockNotifier.EXPECT().Error("Error", "Unable to save file").Times(1)

	err := s.Save()
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestCSVSessionRoundTrip(t *testing.T) {
	common.SetTestLoggerNop()

	path := filepath.Join(t.TempDir(), "machines.csv")

	first := New(persistence.NewCSVStore(path))
	require.NoError(t, first.Load(), "missing file loads as empty")
	assert.Equal(t, 0, first.Inventory.Len())

	_, err := first.AddMachine(latheInput)
	require.NoError(t, err)
	_, err = first.AddMachine(models.RawInput{ID: "2", Name: `Press "B", big`, Duration: "60", Performance: "72.0"})
	require.NoError(t, err)
	require.NoError(t, first.Save())

	second := New(persistence.NewCSVStore(path))
	require.NoError(t, second.Load())
	assert.Equal(t, first.Inventory.List(), second.Inventory.List())
}

func TestCSVSessionBadRowKeepsInventory(t *testing.T) {
	common.SetTestLoggerNop()

	path := filepath.Join(t.TempDir(), "machines.csv")
	require.NoError(t, os.WriteFile(path, []byte("ID,Machine,Duration,Performance,State\n1,Lathe A,120,95.5,OK\n2,Press B,60,72.0\n"), 0o644))

	s := New(persistence.NewCSVStore(path))
	_, err := s.AddMachine(pressInput)
	require.NoError(t, err)
	before := s.Inventory.List()

	err = s.Load()
	assert.ErrorIs(t, err, persistence.ErrPersistence)
	assert.Equal(t, before, s.Inventory.List())
}
