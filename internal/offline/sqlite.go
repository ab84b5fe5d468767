package offline

import (
	"database/sql"
	"fmt"
	"time"

	// Pure-Go SQLite driver; no CGO so the sync agent builds anywhere.
	_ "modernc.org/sqlite"
)

// schema is executed once on open. Insertion order is preserved by the
// autoincrement rowid; replay reads in that order.
const schema = `
CREATE TABLE IF NOT EXISTS offline_operations (
    seq         INTEGER PRIMARY KEY AUTOINCREMENT,
    id          TEXT    NOT NULL UNIQUE,
    type        TEXT    NOT NULL,
    item_id     TEXT    NOT NULL DEFAULT '',
    data        TEXT    NOT NULL DEFAULT '',
    timestamp   TEXT    NOT NULL,
    retry_count INTEGER NOT NULL DEFAULT 0,
    max_retries INTEGER NOT NULL DEFAULT 3,
    priority    INTEGER NOT NULL DEFAULT 0
);
`

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the queue database at path and applies the
// schema. WAL mode keeps a reader (status display) from blocking the writer.
func OpenSQLite(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open queue db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Append(op Operation) error {
	_, err := s.db.Exec(`
INSERT INTO offline_operations (id, type, item_id, data, timestamp, retry_count, max_retries, priority)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, op.ID, string(op.Type), op.ItemID, string(op.Data), op.Timestamp.UTC().Format(time.RFC3339Nano),
		op.RetryCount, op.MaxRetries, op.Priority)
	return err
}

func (s *sqliteStore) List() ([]Operation, error) {
	rows, err := s.db.Query(`
SELECT id, type, item_id, data, timestamp, retry_count, max_retries, priority
FROM offline_operations
ORDER BY seq ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var (
			op      Operation
			rawType string
			rawData string
			rawTime string
		)
		if err := rows.Scan(&op.ID, &rawType, &op.ItemID, &rawData, &rawTime,
			&op.RetryCount, &op.MaxRetries, &op.Priority); err != nil {
			return nil, err
		}
		op.Type = OpType(rawType)
		if rawData != "" {
			op.Data = []byte(rawData)
		}
		if ts, err := time.Parse(time.RFC3339Nano, rawTime); err == nil {
			op.Timestamp = ts
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

func (s *sqliteStore) Remove(id string) error {
	_, err := s.db.Exec(`DELETE FROM offline_operations WHERE id = ?`, id)
	return err
}

func (s *sqliteStore) BumpRetry(id string) error {
	_, err := s.db.Exec(`UPDATE offline_operations SET retry_count = retry_count + 1 WHERE id = ?`, id)
	return err
}

func (s *sqliteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM offline_operations`)
	return err
}

// Close releases the underlying database handle.
func (s *sqliteStore) Close() error { return s.db.Close() }
