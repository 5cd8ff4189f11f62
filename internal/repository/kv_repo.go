package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"wordmemo/internal/database"
)

// KeyValueStore is a string-keyed store for persisted application state
type KeyValueStore interface {
	// Get returns the value for key and whether it exists
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	// SetMany applies all writes atomically. A nil value deletes the key.
	SetMany(values map[string]*string) error
}

// KVRepository stores values in the kv_store table
type KVRepository struct {
	db database.DBTX
}

// NewKVRepository creates a new key-value repository
func NewKVRepository(db database.DBTX) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves a value by key
func (r *KVRepository) Get(key string) (string, bool, error) {
	var value string
	query := `SELECT store_value FROM kv_store WHERE store_key = ?`
	err := r.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set updates or inserts a value
func (r *KVRepository) Set(key, value string) error {
	if _, err := r.db.Exec(r.db.GetDialect().UpsertValueQuery(), key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting a missing key is not an error
func (r *KVRepository) Delete(key string) error {
	if _, err := r.db.Exec(`DELETE FROM kv_store WHERE store_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// SetMany writes several keys in a single transaction
func (r *KVRepository) SetMany(values map[string]*string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range values {
		if value == nil {
			if _, err := tx.Exec(`DELETE FROM kv_store WHERE store_key = ?`, key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
			continue
		}
		if _, err := tx.Exec(tx.GetDialect().UpsertValueQuery(), key, *value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
