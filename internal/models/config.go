package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Accrual  AccrualConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// AccrualConfig holds interest accrual settings. Interval is a deployment
// concern; rate and ceiling factor are policy and may come from a YAML file.
type AccrualConfig struct {
	Interval      time.Duration
	PageSize      int
	Rate          decimal.Decimal
	CeilingFactor decimal.Decimal
	PolicyFile    string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}
