// Package migrations содержит SQL-миграции схемы PostgreSQL,
// встроенные в бинарный файл.
package migrations

import "embed"

// FS содержит файлы вида NNNNNN_name.up.sql / NNNNNN_name.down.sql
//
//go:embed *.sql
var FS embed.FS
