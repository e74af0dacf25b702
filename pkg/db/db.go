package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/models"
	"liyu1981.xyz/machine-stock/pkg/persistence"
)

// MachineRow is the stored form of a record. Seq keeps inventory order.
type MachineRow struct {
	Seq           uint `gorm:"primaryKey;autoIncrement"`
	MachineID     int
	Name          string `gorm:"not null"`
	DurationHours int
	Performance   float64
	State         string `gorm:"type:varchar(8)"`
}

func (MachineRow) TableName() string {
	return "machines"
}

type DB struct {
	Conn *gorm.DB
	Path string
}

var _ persistence.Store = (*DB)(nil)

// Open connects with dialector and migrates the schema.
func Open(dialector gorm.Dialector) (*DB, error) {
	log := common.GetLogger()

	conn, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if err := conn.AutoMigrate(&MachineRow{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Info("Database migration completed")

	if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		return nil, fmt.Errorf("set sqlite journal mode: %w", err)
	}

	return &DB{Conn: conn}, nil
}

// OpenPath opens a sqlite file, creating it when missing.
func OpenPath(path string) (*DB, error) {
	d, err := Open(sqlite.Open(path))
	if err != nil {
		return nil, &persistence.PersistenceError{Op: "open", Path: path, Err: err}
	}
	d.Path = path
	return d, nil
}

func UseSqliteDialector() gorm.Dialector {
	return sqlite.Open(common.GetEnvOr(common.EnvKeyStockDbPath, common.DefaultDbPath))
}

// UseMemorySqliteDialector returns a private in-memory database; callers
// passing the same name share it.
func UseMemorySqliteDialector(name string) gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
}

func (d *DB) Close() error {
	sqlDB, err := d.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func persistenceLogger(category string) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNamePersistence,
		zap.String(common.LoggerFieldCategory, category),
	)
}

// Load returns every row in insertion order with state recomputed.
func (d *DB) Load() ([]models.MachineRecord, error) {
	var rows []MachineRow
	if err := d.Conn.Order("seq asc").Find(&rows).Error; err != nil {
		persistenceLogger(common.LoggerCategoryLoad).Error("Failed to read machines", zap.Error(err))
		return nil, &persistence.PersistenceError{Op: "load", Path: d.Path, Err: err}
	}

	records := common.Mapper(rows, func(r MachineRow) models.MachineRecord {
		return models.NewMachineRecord(r.MachineID, r.Name, r.DurationHours, r.Performance)
	})

	persistenceLogger(common.LoggerCategoryLoad).Info("Loaded machines", zap.Int("count", len(records)))
	return records, nil
}

// Save replaces the stored set with records in a single transaction.
func (d *DB) Save(records []models.MachineRecord) error {
	rows := common.Mapper(records, func(m models.MachineRecord) MachineRow {
		return MachineRow{
			MachineID:     m.ID,
			Name:          m.Name,
			DurationHours: m.DurationHours,
			Performance:   m.Performance,
			State:         string(m.State),
		}
	})

	err := d.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&MachineRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		persistenceLogger(common.LoggerCategorySave).Error("Failed to write machines", zap.Error(err))
		return &persistence.PersistenceError{Op: "save", Path: d.Path, Err: err}
	}

	persistenceLogger(common.LoggerCategorySave).Info("Saved machines", zap.Int("count", len(rows)))
	return nil
}
