// Package migrations embeds the SQL schema migrations into the binary.
//
// Each dialect has its own directory of goose migrations. Importing this
// package registers them with the database package:
//
//	import _ "github.com/nerrad567/recipe-manager/migrations"
package migrations

import (
	"embed"

	"github.com/nerrad567/recipe-manager/internal/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
}
