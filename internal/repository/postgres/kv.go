package postgres

import (
	"database/sql"

	"wordreader/internal/repository"
)

// KVRepo implements repository.KeyValueRepository on PostgreSQL
type KVRepo struct {
	db *sql.DB
}

// NewKVRepo creates a new key-value repository
func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the value stored under key
func (r *KVRepo) Get(key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM kv_entries WHERE key = $1`
	err := r.db.QueryRow(query, key).Scan(&value)

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
		INSERT INTO kv_entries (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := r.db.Exec(query, key, value)
	return err
}

// Delete removes key; deleting a missing key is not an error
func (r *KVRepo) Delete(key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`
	_, err := r.db.Exec(query, key)
	return err
}

// Keys returns all keys starting with prefix, sorted
func (r *KVRepo) Keys(prefix string) ([]string, error) {
	query := `SELECT key FROM kv_entries WHERE key LIKE $1 ESCAPE '\' ORDER BY key`

	rows, err := r.db.Query(query, repository.LikePrefix(prefix))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
