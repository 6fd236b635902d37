package toolbox

import (
	"io/fs"

	"github.com/goliatone/go-admin-toolbox/migrations"
)

// GetMigrationsFS returns the embedded record store schema, laid out under
// data/sql/migrations, for hosts that run migrations themselves.
func GetMigrationsFS() fs.FS {
	return migrations.FS()
}
