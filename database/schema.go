package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Config keys and the seeded defaults. The admin reset endpoint also falls
// back to DefaultAdminPassword.
const (
	KeyUserPassword  = "USER_PASSWORD"
	KeyAdminPassword = "ADMIN_PASSWORD"

	DefaultUserPassword  = "Rios123"
	DefaultAdminPassword = "Cris123"
)

// schemaStatements create every table and index if missing. The legacy
// single-item `boletas` table is kept so older data files stay readable;
// nothing in the current handlers touches it.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS boletas (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cliente TEXT NOT NULL,
		tipo_item TEXT NOT NULL,
		kilos REAL DEFAULT 0,
		cantidad INTEGER DEFAULT 0,
		servicio TEXT DEFAULT 'normal',
		perfumado INTEGER DEFAULT 0,
		precio REAL NOT NULL,
		fecha TEXT NOT NULL,
		metodo_pago TEXT DEFAULT 'efectivo',
		estado TEXT DEFAULT 'registrado'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_boletas_fecha ON boletas(fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_boletas_cliente ON boletas(cliente)`,

	`CREATE TABLE IF NOT EXISTS boleta (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		numero TEXT,
		cliente TEXT NOT NULL,
		direccion TEXT,
		telefono TEXT,
		fecha TEXT NOT NULL,
		entrega_fecha TEXT,
		entrega_hora TEXT,
		metodo_pago TEXT DEFAULT 'efectivo',
		estado TEXT DEFAULT 'registrado',
		a_cuenta REAL DEFAULT 0,
		saldo REAL DEFAULT 0,
		total REAL DEFAULT 0,
		notas TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_boleta_fecha ON boleta(fecha)`,
	`CREATE INDEX IF NOT EXISTS idx_boleta_cliente ON boleta(cliente)`,

	`CREATE TABLE IF NOT EXISTS boleta_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		boleta_id INTEGER NOT NULL REFERENCES boleta(id) ON DELETE CASCADE,
		descripcion TEXT,
		tipo TEXT,
		prendas INTEGER DEFAULT 0,
		kilos REAL DEFAULT 0,
		lavado TEXT,
		secado TEXT,
		p_unit REAL DEFAULT 0,
		importe REAL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bitems_boleta ON boleta_items(boleta_id)`,

	`CREATE TABLE IF NOT EXISTS config (
		key TEXT PRIMARY KEY,
		value TEXT
	)`,
}

// Init creates the schema and seeds the default passwords. Idempotent; safe
// to run on every process start.
func Init(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}

	const seed = `INSERT OR IGNORE INTO config (key, value) VALUES (?, ?)`
	if _, err := tx.Exec(seed, KeyUserPassword, DefaultUserPassword); err != nil {
		return fmt.Errorf("failed to seed user password: %w", err)
	}
	if _, err := tx.Exec(seed, KeyAdminPassword, DefaultAdminPassword); err != nil {
		return fmt.Errorf("failed to seed admin password: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}
