// Package sqlstore implements durable.Store on a single SQL table:
//
//	kv(key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TIMESTAMP)
//
// Two dialects are supported: SQLite (modernc.org/sqlite, the default for the
// client) and PostgreSQL (pgx stdlib driver). The schema is managed by goose
// migrations embedded in internal/client/migrations.
//
// Update runs its read-modify-write inside one transaction via dbx.WithTx;
// on PostgreSQL the row is locked with SELECT ... FOR UPDATE.
//
// Typical Usage
//
//	s, err := sqlstore.Open(ctx, sqlstore.DriverSQLite, "offline.db")
//	if err != nil { ... }
//	defer s.Close()
//	_ = s.Set(ctx, "user", b)
package sqlstore
