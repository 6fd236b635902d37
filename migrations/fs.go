package migrations

import (
	"embed"
	"io/fs"
)

// schemaFS holds the record store schema for postgres, with sqlite variants
// under data/sql/migrations/sqlite.
//
//go:embed data/sql/migrations/*.sql data/sql/migrations/sqlite/*.sql
var schemaFS embed.FS

func FS() fs.FS {
	return schemaFS
}
