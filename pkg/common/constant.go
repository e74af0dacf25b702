package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyStockDataFile  string = "STOCK_DATA_FILE"
	EnvKeyStockStoreType string = "STOCK_STORE_TYPE"
	EnvKeyStockDbPath    string = "STOCK_DB_PATH"
	EnvKeyStockLogDir    string = "STOCK_LOG_DIR"

	DefaultDataFile string = "machines.csv"
	DefaultDbPath   string = "machines.db"
	DefaultLogDir   string = "logs"

	StoreTypeCSV    string = "csv"
	StoreTypeSqlite string = "sqlite"

	LoggerNameInventory   string = "inventory"
	LoggerNamePersistence string = "persistence"
	LoggerNameStock       string = "stock"
	LoggerNameCLI         string = "cli"

	LoggerFieldCategory     string = "category"
	LoggerCategoryRecord    string = "record"
	LoggerCategorySelection string = "selection"
	LoggerCategoryLoad      string = "load"
	LoggerCategorySave      string = "save"
	LoggerCategoryChart     string = "chart"
	LoggerCategoryNotify    string = "notify"
	LoggerCategoryMetrics   string = "metrics"
)
