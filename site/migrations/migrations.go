// Package migrations embeds the site's goose SQL migrations.
package migrations

import "embed"

// FS holds the migrations at its root, ready for db.Migrate.
//
//go:embed *.sql
var FS embed.FS
