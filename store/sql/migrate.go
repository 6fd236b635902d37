package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-admin-toolbox/core"
	"github.com/goliatone/go-admin-toolbox/migrations"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
)

const storagePingTimeout = 5 * time.Second

// storageClientConfig adapts core.StorageConfig to the persistence client.
type storageClientConfig struct {
	storage core.StorageConfig
}

func (storageClientConfig) GetDebug() bool {
	return false
}

func (c storageClientConfig) GetDriver() string {
	return normalizeDriver(c.storage.Driver)
}

func (c storageClientConfig) GetServer() string {
	return c.storage.DSN
}

func (storageClientConfig) GetPingTimeout() time.Duration {
	return storagePingTimeout
}

func (storageClientConfig) GetOtelIdentifier() string {
	return "go-admin-toolbox"
}

// openStorage opens storage and, with AutoMigrate, brings its schema up to
// date through a persistence client before handing back the bun handle.
func openStorage(ctx context.Context, storage core.StorageConfig) (*bun.DB, error) {
	if !storage.AutoMigrate {
		return OpenDB(storage.Driver, storage.DSN)
	}

	dialect, err := migrations.DialectForDriver(storage.Driver)
	if err != nil {
		return nil, err
	}
	sqlDB, bunDialect, err := Open(storage.Driver, storage.DSN)
	if err != nil {
		return nil, err
	}
	client, err := persistence.New(storageClientConfig{storage: storage}, sqlDB, bunDialect)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlstore: persistence client: %w", err)
	}
	if err := migrations.Apply(ctx, client, dialect); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client.DB(), nil
}
