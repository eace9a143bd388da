package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BridgeAccounts holds the chart codes the deal bridge books against.
type BridgeAccounts struct {
	Receivable string `mapstructure:"BRIDGE_RECEIVABLE_ACCOUNT_CODE"`
	Revenue    string `mapstructure:"BRIDGE_REVENUE_ACCOUNT_CODE"`
	Payable    string `mapstructure:"BRIDGE_PAYABLE_ACCOUNT_CODE"`
	Expense    string `mapstructure:"BRIDGE_EXPENSE_ACCOUNT_CODE"`
	Cash       string `mapstructure:"BRIDGE_CASH_ACCOUNT_CODE"`
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string
	LogLevel       string
	LogFormat      string
	MetricsAddr    string
	SeedCreatedBy  string
	ChartFile      string
	Bridge         BridgeAccounts
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		MetricsAddr:    v.GetString("METRICS_ADDR"),
		SeedCreatedBy:  v.GetString("SEED_CREATED_BY"),
		ChartFile:      v.GetString("CHART_FILE"),
		Bridge: BridgeAccounts{
			Receivable: v.GetString("BRIDGE_RECEIVABLE_ACCOUNT_CODE"),
			Revenue:    v.GetString("BRIDGE_REVENUE_ACCOUNT_CODE"),
			Payable:    v.GetString("BRIDGE_PAYABLE_ACCOUNT_CODE"),
			Expense:    v.GetString("BRIDGE_EXPENSE_ACCOUNT_CODE"),
			Cash:       v.GetString("BRIDGE_CASH_ACCOUNT_CODE"),
		},
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if err := cfg.Bridge.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("SEED_CREATED_BY", "")
	v.SetDefault("CHART_FILE", "")

	defaults := DefaultBridgeAccounts()
	v.SetDefault("BRIDGE_RECEIVABLE_ACCOUNT_CODE", defaults.Receivable)
	v.SetDefault("BRIDGE_REVENUE_ACCOUNT_CODE", defaults.Revenue)
	v.SetDefault("BRIDGE_PAYABLE_ACCOUNT_CODE", defaults.Payable)
	v.SetDefault("BRIDGE_EXPENSE_ACCOUNT_CODE", defaults.Expense)
	v.SetDefault("BRIDGE_CASH_ACCOUNT_CODE", defaults.Cash)
}

// DefaultBridgeAccounts returns the codes of the bundled chart of accounts.
func DefaultBridgeAccounts() BridgeAccounts {
	return BridgeAccounts{
		Receivable: "1210",
		Revenue:    "6010",
		Payable:    "3310",
		Expense:    "7210",
		Cash:       "1030",
	}
}

// Validate checks that every bridge account code is set.
func (b BridgeAccounts) Validate() error {
	var missing []string
	for name, code := range map[string]string{
		"receivable": b.Receivable,
		"revenue":    b.Revenue,
		"payable":    b.Payable,
		"expense":    b.Expense,
		"cash":       b.Cash,
	} {
		if strings.TrimSpace(code) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("bridge account codes not configured: %s", strings.Join(missing, ", "))
	}
	return nil
}
