// Package migrations embeds the SQL schema migrations, one directory per database driver.
package migrations

import "embed"

// FS holds the embedded migration files under sqlite/ and postgres/.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
