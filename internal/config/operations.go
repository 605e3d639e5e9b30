package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// OperationsConfig holds the business knobs that may change without a restart.
type OperationsConfig struct {
	Customers CustomersConfig `mapstructure:"customers"`
	Orders    OrdersConfig    `mapstructure:"orders"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Export    ExportConfig    `mapstructure:"export"`
}

type CustomersConfig struct {
	ActivityWindowDays int `mapstructure:"activityWindowDays"`
}

type OrdersConfig struct {
	StrictTransitions bool `mapstructure:"strictTransitions"`
}

type LedgerConfig struct {
	RequirePositiveAmount bool   `mapstructure:"requirePositiveAmount"`
	CurrencySuffix        string `mapstructure:"currencySuffix"`
}

type ExportConfig struct {
	Delimiter   string `mapstructure:"delimiter"`
	LineWidth   int    `mapstructure:"lineWidth"`
	RowsPerPage int    `mapstructure:"rowsPerPage"`
	SheetName   string `mapstructure:"sheetName"`
}

func DefaultOperationsConfig() OperationsConfig {
	return OperationsConfig{
		Customers: CustomersConfig{ActivityWindowDays: 90},
		Orders:    OrdersConfig{StrictTransitions: false},
		Ledger:    LedgerConfig{RequirePositiveAmount: false, CurrencySuffix: "TL"},
		Export: ExportConfig{
			Delimiter:   " | ",
			LineWidth:   130,
			RowsPerPage: 50,
			SheetName:   "Rapor",
		},
	}
}

type OperationsConfigHolder struct {
	current atomic.Value // holds OperationsConfig
}

// NewStaticOperationsConfigHolder wraps a fixed config, used by tests and one-shot commands.
func NewStaticOperationsConfigHolder(cfg OperationsConfig) *OperationsConfigHolder {
	holder := &OperationsConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

// NewOperationsConfigHolder reads operations.yml and keeps it hot-reloaded.
func NewOperationsConfigHolder(log *zap.Logger) (*OperationsConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("operations")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/plantdesk")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PLANTDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultOperationsConfig()
	v.SetDefault("customers.activityWindowDays", defaults.Customers.ActivityWindowDays)
	v.SetDefault("orders.strictTransitions", defaults.Orders.StrictTransitions)
	v.SetDefault("ledger.requirePositiveAmount", defaults.Ledger.RequirePositiveAmount)
	v.SetDefault("ledger.currencySuffix", defaults.Ledger.CurrencySuffix)
	v.SetDefault("export.delimiter", defaults.Export.Delimiter)
	v.SetDefault("export.lineWidth", defaults.Export.LineWidth)
	v.SetDefault("export.rowsPerPage", defaults.Export.RowsPerPage)
	v.SetDefault("export.sheetName", defaults.Export.SheetName)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var cfg OperationsConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := validateOperationsConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticOperationsConfigHolder(cfg)
	if !fileFound {
		return holder, nil
	}

	log = log.Named("operations.config")
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated OperationsConfig
		if err := v.Unmarshal(&updated); err != nil {
			log.Warn("reload failed", zap.Error(err))
			return
		}
		if err := validateOperationsConfig(updated); err != nil {
			log.Warn("invalid config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *OperationsConfigHolder) Get() OperationsConfig {
	return h.current.Load().(OperationsConfig)
}

func validateOperationsConfig(cfg OperationsConfig) error {
	if cfg.Customers.ActivityWindowDays <= 0 {
		return errors.New("customers.activityWindowDays must be positive")
	}
	if cfg.Export.LineWidth <= 0 {
		return errors.New("export.lineWidth must be positive")
	}
	if cfg.Export.RowsPerPage <= 0 {
		return errors.New("export.rowsPerPage must be positive")
	}
	if strings.TrimSpace(cfg.Export.SheetName) == "" {
		return errors.New("export.sheetName cannot be empty")
	}
	return nil
}
