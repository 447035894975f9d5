package migrations

import "embed"

// FS holds the SQL migrations so the migrate binary runs without the source tree.
//
//go:embed *.sql
var FS embed.FS
