// Package migrations embeds the SQL schema files into the binary.
// Importing it for side effects registers them with the database package.
package migrations

import (
	"embed"

	"github.com/nerrad567/device-timeline/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
