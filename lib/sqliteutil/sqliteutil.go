package sqliteutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

func isRemote(path string) bool {
	return strings.HasPrefix(path, "libsql://") ||
		strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "ws://") ||
		strings.HasPrefix(path, "wss://")
}

// OpenDB opens a sqlite database (a local file, `:memory:`, or a
// remote sqld url) and applies the schema.
func OpenDB(schema, path string) (*sql.DB, error) {
	driver := "sqlite"
	if isRemote(path) {
		driver = "libsql"
	}

	if driver == "sqlite" && path != ":memory:" {
		err := os.MkdirAll(filepath.Dir(path), 0777)
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if driver == "sqlite" {
		// see this stackoverflow post for information on why the following
		// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
		db.SetMaxOpenConns(1)
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		_, err = db.Exec("PRAGMA foreign_keys=ON")
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
	}

	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}
