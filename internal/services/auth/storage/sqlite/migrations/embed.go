// Package migrations embeds the auth schema, applied in file-name order.
package migrations

import "embed"

// FS holds the numbered *.sql migrations.
//
//go:embed *.sql
var FS embed.FS
