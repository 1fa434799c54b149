package config

import "fmt"

const (
	DefaultServerPort  = "8080"
	DefaultStoreDriver = "memory"
	DefaultAgeLimit    = 18
)

// Store drivers accepted in AppConfig.StoreDriver.
const (
	StoreMemory = "memory"
	StorePgx    = "pgx"
	StoreGorm   = "gorm"
)

// AppConfig is the configuration of the user service.
type AppConfig struct {
	AppServerPort string `json:"app_server_port"`
	DBConnURL     string `json:"db_conn_url"`
	StoreDriver   string `json:"store_driver"`
	UserAgeLimit  *int   `json:"user_age_limit"`
	Debug         bool   `json:"debug"`
}

// AgeLimit returns the configured age limit, or DefaultAgeLimit when unset.
func (c AppConfig) AgeLimit() int {
	if c.UserAgeLimit == nil {
		return DefaultAgeLimit
	}
	return *c.UserAgeLimit
}

// ApplyDefaults fills the fields left empty by the config source.
func (c *AppConfig) ApplyDefaults() {
	if c.AppServerPort == "" {
		c.AppServerPort = DefaultServerPort
	}
	if c.StoreDriver == "" {
		c.StoreDriver = DefaultStoreDriver
	}
}

// Validate reports settings the service can not start with.
func (c AppConfig) Validate() error {
	if c.AgeLimit() < 0 {
		return fmt.Errorf("user age limit must not be negative, got %d", c.AgeLimit())
	}
	switch c.StoreDriver {
	case StoreMemory:
	case StorePgx, StoreGorm:
		if c.DBConnURL == "" {
			return fmt.Errorf("store driver %s needs db_conn_url", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	return nil
}
