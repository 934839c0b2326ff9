// Package migrations embeds the postgres schema applied by gormrepo.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
