// Package migrations embeds the SQL schema migrations applied by goose
// during installation.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
