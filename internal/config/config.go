package config

import (
	"encoding/json"
	"os"
	"strconv"
)

type Config struct {
	Server    ServerConfig    `json:"server"`
	Store     StoreConfig     `json:"store"`
	Catalog   CatalogConfig   `json:"catalog"`
	Alerts    AlertsConfig    `json:"alerts"`
	Documents DocumentsConfig `json:"documents"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// StoreConfig describes the shop itself, not a database.
type StoreConfig struct {
	Name           string  `json:"name"`
	CurrencySymbol string  `json:"currency_symbol"`
	TaxRate        float64 `json:"tax_rate"`
	ReportTopN     int     `json:"report_top_n"`
}

// CatalogConfig selects where product snapshots live. The in-memory store is
// the default; postgres is an optional adapter for a shared catalog service.
type CatalogConfig struct {
	Driver   string         `json:"driver"` // "memory" or "postgres"
	Postgres DatabaseConfig `json:"postgres"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type AlertsConfig struct {
	Enabled bool        `json:"enabled"`
	Redis   RedisConfig `json:"redis"`
	Channel string      `json:"channel"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type DocumentsConfig struct {
	Dir string `json:"dir"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	return config, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Name:           "Licorería Don Bacco",
			CurrencySymbol: "S/",
			TaxRate:        0.18,
			ReportTopN:     5,
		},
		Catalog: CatalogConfig{
			Driver: "memory",
		},
		Alerts: AlertsConfig{
			Channel: "stock.alerts",
		},
		Documents: DocumentsConfig{
			Dir: "documents",
		},
	}
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
