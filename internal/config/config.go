package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Exchange  Exchange  `mapstructure:"exchange"`
	Simulator Simulator `mapstructure:"simulator"`
	Logger    Logger    `mapstructure:"logger"`
}

// Exchange holds the configuration for the exchange itself.
type Exchange struct {
	// WindowMinutes is the trailing window for price statistics.
	WindowMinutes int `mapstructure:"window_minutes"`
	// Listings are the stocks registered at startup.
	Listings []Listing `mapstructure:"listings"`
}

// Listing describes a stock to register at startup.
type Listing struct {
	Symbol string `mapstructure:"symbol"`
	// Type is either "common" or "preferred".
	Type         string  `mapstructure:"type"`
	LastDividend float64 `mapstructure:"last_dividend"`
	// FixedDividend is a fraction in [0, 1]; preferred stocks only.
	FixedDividend float64 `mapstructure:"fixed_dividend"`
	ParValue      float64 `mapstructure:"par_value"`
}

// Simulator holds the configuration for the trade flow simulator.
type Simulator struct {
	// Rate is the number of trades generated per second.
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
	// Volatility is the relative size of a random price step.
	Volatility  float64 `mapstructure:"volatility"`
	MaxQuantity int64   `mapstructure:"max_quantity"`
	// ReportIntervalSeconds controls how often prices and the index
	// are logged.
	ReportIntervalSeconds int `mapstructure:"report_interval"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("exchange.window_minutes", 15)
	viper.SetDefault("simulator.rate", 5)  // trades per second
	viper.SetDefault("simulator.burst", 1) // burst size
	viper.SetDefault("simulator.volatility", 0.01)
	viper.SetDefault("simulator.max_quantity", 1000)
	viper.SetDefault("simulator.report_interval", 10)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
