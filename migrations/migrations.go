// Package migrations bundles the service's SQL schema migrations into the
// binary so deployments never depend on files on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
