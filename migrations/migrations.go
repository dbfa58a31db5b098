package migrations

import "embed"

// FS holds the SQL schema files.
//
//go:embed *.sql
var FS embed.FS
