package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Email    EmailConfig    `mapstructure:"email"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig holds the MySQL connection settings. An empty host means
// the store is not configured and every data route answers 503.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// AuthConfig holds the shared-secret gate settings. Password may be stored
// as a bcrypt hash.
type AuthConfig struct {
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	Secret       string        `mapstructure:"secret"`
	SessionHours int           `mapstructure:"session_hours"`
	SessionTTL   time.Duration `mapstructure:"-"`
}

// SheetsConfig holds the Google Sheets backup destination. An empty
// spreadsheet id disables the backup endpoint.
type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	CredentialsFile string `mapstructure:"credentials_file"`
	IncomeSheet     string `mapstructure:"income_sheet"`
	ExpenseSheet    string `mapstructure:"expense_sheet"`
	CashSheet       string `mapstructure:"cash_sheet"`
}

// EmailConfig holds the optional backup report mail settings.
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

var (
	// GlobalConfig is the process-wide configuration instance.
	GlobalConfig *Config
)

// LoadConfig loads configuration with the precedence:
// environment variables > external config file > embedded defaults.
// configPath optionally points at an external YAML file.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("warning: cannot read config file %s: %v", configPath, err)
		} else {
			log.Printf("merged config file: %s", configPath)
		}
	} else {
		external := viper.New()
		external.SetConfigName("config")
		external.SetConfigType("yaml")
		external.AddConfigPath(".")
		external.AddConfigPath("./config")
		external.AddConfigPath("/etc/fintrack")
		external.AddConfigPath("$HOME/.fintrack")

		if err := external.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(external.AllSettings()); err != nil {
				log.Printf("warning: merge external config: %v", err)
			} else {
				log.Printf("merged config file: %s", external.ConfigFileUsed())
			}
		}
	}

	v.SetEnvPrefix("FINTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Auth.SessionHours <= 0 {
		cfg.Auth.SessionHours = 24
	}
	cfg.Auth.SessionTTL = time.Duration(cfg.Auth.SessionHours) * time.Hour

	GlobalConfig = &cfg

	return &cfg, nil
}

// GetConfig returns the global configuration.
func GetConfig() *Config {
	return GlobalConfig
}

// PrintConfig logs the effective configuration, hiding secrets.
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("configuration:")
	log.Printf("  server: %s (mode: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	if GlobalConfig.Database.Host == "" {
		log.Printf("  database: not configured")
	} else {
		log.Printf("  database: %s@%s:%s/%s",
			GlobalConfig.Database.Username,
			GlobalConfig.Database.Host,
			GlobalConfig.Database.Port,
			GlobalConfig.Database.DBName)
	}
	log.Printf("  sheets backup: %v", GlobalConfig.Sheets.SpreadsheetID != "")
	log.Printf("  email reports: %v", GlobalConfig.Email.Enabled)
}

// SafeErrorMessage hides internal error details from clients in release
// mode and returns the fallback message instead.
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
