package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"wordreader/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Open connects to the SQLite file at path and creates the schema
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the key-value table if it does not exist
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create sqlite schema: %w", err)
	}
	return nil
}

// KVRepo implements repository.KeyValueRepository on SQLite
type KVRepo struct {
	db *sqlx.DB
}

// NewKVRepo creates a new key-value repository
func NewKVRepo(db *sqlx.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value stored under key
func (r *KVRepo) Get(key string) (string, bool, error) {
	var value string
	err := r.db.Get(&value, `SELECT value FROM kv_entries WHERE key = ?`, key)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

// Set stores value under key, replacing any previous value
func (r *KVRepo) Set(key, value string) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key)
		DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.Exec(query, key, value)
	return err
}

// Delete removes key
func (r *KVRepo) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM kv_entries WHERE key = ?`, key)
	return err
}

// Keys returns all keys starting with prefix, sorted
func (r *KVRepo) Keys(prefix string) ([]string, error) {
	keys := []string{}
	err := r.db.Select(&keys, `SELECT key FROM kv_entries WHERE key LIKE ? ESCAPE '\' ORDER BY key`, repository.LikePrefix(prefix))
	if err != nil {
		return nil, err
	}
	return keys, nil
}
