package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/models"
	"liyu1981.xyz/machine-stock/pkg/persistence"
	_ "liyu1981.xyz/machine-stock/pkg/testing"
)

func tableExists(db *gorm.DB, tableName string) bool {
	var count int64
	err := db.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?`, tableName,
	).Scan(&count).Error
	return err == nil && count > 0
}

func openMemory(t *testing.T) *DB {
	t.Helper()
	d, err := Open(UseMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestOpenMigrates(t *testing.T) {
	common.SetTestLoggerNop()

	d := openMemory(t)
	assert.True(t, tableExists(d.Conn, "machines"))
}

func TestLoadEmpty(t *testing.T) {
	common.SetTestLoggerNop()

	records, err := openMemory(t).Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	common.SetTestLoggerNop()

	d := openMemory(t)
	records := []models.MachineRecord{
		models.NewMachineRecord(2, "Press B", 60, 72.0),
		models.NewMachineRecord(1, "Lathe, A", 120, 95.5),
		models.NewMachineRecord(1, "Duplicate id", 0, 80),
	}

	require.NoError(t, d.Save(records))

	got, err := d.Load()
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestSaveReplacesPreviousRows(t *testing.T) {
	common.SetTestLoggerNop()

	d := openMemory(t)
	require.NoError(t, d.Save([]models.MachineRecord{
		models.NewMachineRecord(1, "Old", 1, 1),
		models.NewMachineRecord(2, "Older", 2, 2),
	}))
	require.NoError(t, d.Save([]models.MachineRecord{models.NewMachineRecord(3, "New", 3, 90)}))

	got, err := d.Load()
	require.NoError(t, err)
	assert.Equal(t, []models.MachineRecord{models.NewMachineRecord(3, "New", 3, 90)}, got)

	require.NoError(t, d.Save(nil))
	got, err = d.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadRecomputesState(t *testing.T) {
	common.SetTestLoggerNop()

	d := openMemory(t)
	require.NoError(t, d.Conn.Create(&MachineRow{MachineID: 1, Name: "Edited", Performance: 10, State: "OK"}).Error)

	got, err := d.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.StateAlert, got[0].State)
}

func TestClosedDatabaseReportsPersistenceError(t *testing.T) {
	common.SetTestLoggerNop()

	d, err := Open(UseMemorySqliteDialector(uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, d.Close())

	_, err = d.Load()
	assert.ErrorIs(t, err, persistence.ErrPersistence)

	err = d.Save([]models.MachineRecord{models.NewMachineRecord(1, "x", 1, 1)})
	assert.ErrorIs(t, err, persistence.ErrPersistence)
}
