package preflight

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/nodebot-tools/setupcheck/internal/config"
)

// memoryDatabase is the SQLite name for an in-memory database.
const memoryDatabase = ":memory:"

// DatabasePath resolves the bot database location the way the server does:
// configured path, then $DB_PATH, then $ADB_PATH, then data/bot.db.
// Relative paths are resolved against root.
func (c *Checker) DatabasePath(root string) string {
	path := c.cfg.Database.Path
	if path == "" {
		path = c.getenv("DB_PATH")
	}
	if path == "" {
		path = c.getenv("ADB_PATH")
	}
	if path == "" {
		path = config.DefaultDatabasePath
	}

	if path == memoryDatabase || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, filepath.FromSlash(path))
}

// CheckDatabase inspects the SQLite database read-only. The server creates
// the file and its tables on start, so their absence is only a warning; a
// file that is not a database is an error.
func (c *Checker) CheckDatabase(ctx context.Context, root string) []CheckResult {
	const name = "database"
	path := c.DatabasePath(root)

	if path == memoryDatabase {
		return []CheckResult{ok(name, "Base de datos en memoria, sin archivo que comprobar")}
	}

	display := path
	if rel, err := filepath.Rel(root, path); err == nil && filepath.IsLocal(rel) {
		display = filepath.ToSlash(rel)
	}

	if _, err := os.Stat(path); err != nil {
		return []CheckResult{warn(name, "Base de datos no encontrada, se creara al iniciar: %s", display)}
	}

	tables, err := c.listTables(ctx, path)
	if err != nil {
		c.logger.Debug("database inspection failed",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return []CheckResult{fail(name, "Base de datos invalida: %s", display)}
	}

	var results []CheckResult
	for _, table := range c.cfg.Database.Tables {
		if !tables[table] {
			results = append(results, warn("table:"+table, "Tabla %s no existe, se creara al iniciar", table))
		}
	}
	if len(results) == 0 {
		results = append(results, ok(name, "Base de datos presente: %s", display))
	}

	return results
}

// listTables opens the database read-only and returns its table names.
func (c *Checker) listTables(ctx context.Context, path string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Tools.Timeout)
	defer cancel()

	dsn := (&url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tables := make(map[string]bool)
	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables[table] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	return tables, nil
}
