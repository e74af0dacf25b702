package stock

import (
	"errors"

	"go.uber.org/zap"
	"liyu1981.xyz/machine-stock/pkg/common"
	"liyu1981.xyz/machine-stock/pkg/inventory"
	"liyu1981.xyz/machine-stock/pkg/persistence"
)

//go:generate mockgen -source=stock.go -destination=mocks/mock_stock.go -package=mocks

var ErrNoData = errors.New("no data available")

// Notifier shows outcomes to the user. Title is a short heading such as
// "Error" or "Success".
type Notifier interface {
	Info(title, message string)
	Warning(title, message string)
	Error(title, message string)
}

// Stock ties the session inventory to its store and the user-facing sinks.
type Stock struct {
	Inventory *inventory.Inventory
	Store     persistence.Store
	Notifier  Notifier
}

type ServiceOpts struct {
	Store    persistence.Store
	Notifier Notifier
}

func New(store persistence.Store) *Stock {
	return &Stock{
		Inventory: inventory.New(),
		Store:     store,
		Notifier:  NewLogNotifier(),
	}
}

func (s *Stock) WithServices(opts ServiceOpts) *Stock {
	if opts.Store != nil {
		s.Store = opts.Store
	}
	if opts.Notifier != nil {
		s.Notifier = opts.Notifier
	}
	return s
}

func logger(category string) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameStock,
		zap.String(common.LoggerFieldCategory, category),
	)
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Info(title, message string) {
	logger(common.LoggerCategoryNotify).Info(message, zap.String("title", title))
}

func (n *LogNotifier) Warning(title, message string) {
	logger(common.LoggerCategoryNotify).Warn(message, zap.String("title", title))
}

func (n *LogNotifier) Error(title, message string) {
	logger(common.LoggerCategoryNotify).Error(message, zap.String("title", title))
}
