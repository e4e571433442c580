package postgres

import "embed"

// MigrationsFS holds the goose SQL migrations for the service schema.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the directory within MigrationsFS that goose should read.
const MigrationsDir = "migrations"
