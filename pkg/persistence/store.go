package persistence

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/models"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Store loads and saves the whole record set at once.
type Store interface {
	Load() ([]models.MachineRecord, error)
	Save(records []models.MachineRecord) error
}

// CSVStore keeps records in a delimited text file at Path.
type CSVStore struct {
	Path string
}

var _ Store = (*CSVStore)(nil)

func NewCSVStore(path string) *CSVStore {
	return &CSVStore{Path: path}
}

func logger(category string) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNamePersistence,
		zap.String(common.LoggerFieldCategory, category),
	)
}

// Load returns an empty set when the file does not exist yet.
func (s *CSVStore) Load() ([]models.MachineRecord, error) {
	log := logger(common.LoggerCategoryLoad).With(zap.String("path", s.Path))

	file, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("Data file not found, starting empty")
		return []models.MachineRecord{}, nil
	}
	if err != nil {
		log.Error("Failed to open data file", zap.Error(err))
		return nil, &PersistenceError{Op: "load", Path: s.Path, Err: err}
	}
	defer file.Close()

	records, err := Deserialize(file)
	if err != nil {
		err = withPath(err, "load", s.Path)
		log.Error("Failed to parse data file", zap.Error(err))
		return nil, err
	}

	log.Info("Loaded machines", zap.Int("count", len(records)))
	return records, nil
}

// Save writes to a temporary file next to Path and renames it into place,
// so an interrupted save leaves the previous file intact.
func (s *CSVStore) Save(records []models.MachineRecord) (err error) {
	log := logger(common.LoggerCategorySave).With(zap.String("path", s.Path))
	defer func() {
		if err != nil {
			log.Error("Failed to save data file", zap.Error(err))
		}
	}()

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.Path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return &PersistenceError{Op: "save", Path: s.Path, Err: err}
	}
	if err = Serialize(tmp, records); err != nil {
		_ = tmp.Close()
		return withPath(err, "save", s.Path)
	}
	if err = tmp.Close(); err != nil {
		return &PersistenceError{Op: "save", Path: s.Path, Err: err}
	}
	if err = os.Rename(tmpName, s.Path); err != nil {
		return &PersistenceError{Op: "save", Path: s.Path, Err: err}
	}

	log.Info("Saved machines", zap.Int("count", len(records)))
	return nil
}
