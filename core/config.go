package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	UnauthorizedDrop   = "drop"
	UnauthorizedReject = "reject"
)

type AdminConfig struct {
	Capability string `koanf:"capability" mapstructure:"capability"`
	// UnauthorizedPolicy is "drop" (no reply, no error) or "reject".
	UnauthorizedPolicy string `koanf:"unauthorized_policy" mapstructure:"unauthorized_policy"`
}

type StorageConfig struct {
	Driver string `koanf:"driver" mapstructure:"driver"`
	DSN    string `koanf:"dsn" mapstructure:"dsn"`

	// AutoMigrate applies the embedded schema when the store is opened.
	AutoMigrate bool `koanf:"auto_migrate" mapstructure:"auto_migrate"`
}

type CacheConfig struct {
	InvitationTTL time.Duration `koanf:"invitation_ttl" mapstructure:"invitation_ttl"`
}

type Config struct {
	ServiceName string        `koanf:"service_name" mapstructure:"service_name"`
	Admin       AdminConfig   `koanf:"admin" mapstructure:"admin"`
	Storage     StorageConfig `koanf:"storage" mapstructure:"storage"`
	Cache       CacheConfig   `koanf:"cache" mapstructure:"cache"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "admin-toolbox",
		Admin: AdminConfig{
			Capability:         CapabilityAdmin,
			UnauthorizedPolicy: UnauthorizedDrop,
		},
		Storage: StorageConfig{
			Driver: "sqlite3",
		},
		Cache: CacheConfig{
			InvitationTTL: 5 * time.Minute,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.Admin.Capability) == "" {
		return fmt.Errorf("core: admin.capability is required")
	}
	switch strings.TrimSpace(strings.ToLower(c.Admin.UnauthorizedPolicy)) {
	case UnauthorizedDrop, UnauthorizedReject:
	default:
		return fmt.Errorf("core: admin.unauthorized_policy %q is invalid", c.Admin.UnauthorizedPolicy)
	}
	switch strings.TrimSpace(c.Storage.Driver) {
	case "", "sqlite3", "sqlite", "postgres", "pg":
	default:
		return fmt.Errorf("core: storage.driver %q is not supported", c.Storage.Driver)
	}
	if c.Cache.InvitationTTL < 0 {
		return fmt.Errorf("core: cache.invitation_ttl must be >= 0")
	}
	return nil
}

// RejectUnauthorized reports whether unauthorized requests surface an error
// instead of being dropped.
func (c Config) RejectUnauthorized() bool {
	return strings.TrimSpace(strings.ToLower(c.Admin.UnauthorizedPolicy)) == UnauthorizedReject
}
