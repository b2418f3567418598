package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the schema for the element pool and quiz results.
var Migrations = migrate.NewMigrations()
