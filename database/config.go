package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// GetConfigValue reads one entry from the config table, falling back to def
// when the key is absent.
func GetConfigValue(db *sqlx.DB, key, def string) (string, error) {
	var value string
	err := db.Get(&value, "SELECT value FROM config WHERE key = ?", key)
	if err != nil {
		if err == sql.ErrNoRows {
			return def, nil
		}
		return "", fmt.Errorf("failed to get config %q: %w", key, err)
	}
	return value, nil
}

// SetConfigValue writes one entry, overwriting any previous value.
func SetConfigValue(db *sqlx.DB, key, value string) error {
	if _, err := db.Exec("REPLACE INTO config (key, value) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("failed to set config %q: %w", key, err)
	}
	return nil
}
