package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/db"
	"liyu1981.xyz/machine-stock/pkg/persistence"
)

type config struct {
	StoreType string
	DataFile  string
	DbPath    string
}

// loadEnv reads .env when present. Unlike a server, the tool must work
// without one.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func loadConfig() config {
	return config{
		StoreType: common.GetEnvOr(common.EnvKeyStockStoreType, common.StoreTypeCSV),
		DataFile:  common.GetEnvOr(common.EnvKeyStockDataFile, common.DefaultDataFile),
		DbPath:    common.GetEnvOr(common.EnvKeyStockDbPath, common.DefaultDbPath),
	}
}

// addFlags binds the storage overrides every command accepts.
func (c *config) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.StoreType, "store", c.StoreType, "storage backend: csv or sqlite")
	flags.StringVar(&c.DataFile, "file", c.DataFile, "CSV data file")
	flags.StringVar(&c.DbPath, "db", c.DbPath, "sqlite database file")
}

// openStore returns the configured store and a function releasing it.
func openStore(c config) (persistence.Store, func() error, error) {
	switch c.StoreType {
	case common.StoreTypeCSV:
		return persistence.NewCSVStore(c.DataFile), func() error { return nil }, nil
	case common.StoreTypeSqlite:
		d, err := db.OpenPath(c.DbPath)
		if err != nil {
			return nil, nil, err
		}
		return d, d.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown %s: %q", common.EnvKeyStockStoreType, c.StoreType)
	}
}
