// Package migrations registers the platform schema with bun's migrator.
package migrations

import (
	"github.com/uptrace/bun/migrate"
)

var Migrations = migrate.NewMigrations()
