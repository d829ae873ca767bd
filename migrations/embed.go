// Package migrations embeds the goose SQL migrations so the server binary,
// the migrate command and the integration tests share one source.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
