// Package migrations carries the embedded goose migration files for the
// catalog database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
