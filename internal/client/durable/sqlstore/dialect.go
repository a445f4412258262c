package sqlstore

import "fmt"

// Driver selects the SQL dialect.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type dialect struct {
	sqlDriver     string
	gooseDialect  string
	migrationsDir string

	get          string
	getForUpdate string
	upsert       string
	del          string
}

var dialects = map[Driver]dialect{
	DriverSQLite: {
		sqlDriver:     "sqlite",
		gooseDialect:  "sqlite3",
		migrationsDir: "sqlite",
		get:           `SELECT value FROM kv WHERE key = ?`,
		getForUpdate:  `SELECT value FROM kv WHERE key = ?`,
		upsert: `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		del: `DELETE FROM kv WHERE key = ?`,
	},
	DriverPostgres: {
		sqlDriver:     "pgx",
		gooseDialect:  "postgres",
		migrationsDir: "postgres",
		get:           `SELECT value FROM kv WHERE key = $1`,
		getForUpdate:  `SELECT value FROM kv WHERE key = $1 FOR UPDATE`,
		upsert: `INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		del: `DELETE FROM kv WHERE key = $1`,
	},
}

func lookupDialect(d Driver) (dialect, error) {
	dl, ok := dialects[d]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported sql driver %q", d)
	}
	return dl, nil
}
