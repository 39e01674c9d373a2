package store

import _ "embed"

// schemaSQL is the arena's full embedded DDL (§3, §4.4). It is applied
// idempotently at startup by Open and standalone by the migrate CLI
// subcommand (cmd/clawcombat-server).
//
//go:embed schema.sql
var schemaSQL string
