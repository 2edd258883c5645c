package database

import (
	"database/sql"
	"fmt"
	"strings"

	"lavanderia/model"

	"github.com/jmoiron/sqlx"
)

// filterClause builds the WHERE fragment shared by listings and period
// totals. Date filters compare calendar dates inclusively.
func filterClause(f model.BoletaFilters) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if f.Cliente != "" {
		conds = append(conds, "cliente LIKE ?")
		args = append(args, "%"+f.Cliente+"%")
	}
	if f.Desde != "" {
		conds = append(conds, "date(fecha) >= date(?)")
		args = append(args, f.Desde)
	}
	if f.Hasta != "" {
		conds = append(conds, "date(fecha) <= date(?)")
		args = append(args, f.Hasta)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// InsertBoleta persists a header plus its items in one transaction and
// returns the generated id. Either everything is written or nothing is.
func InsertBoleta(db *sqlx.DB, b *model.Boleta, items []model.BoletaItem) (int64, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const qHeader = `
		INSERT INTO boleta (numero, cliente, direccion, telefono, fecha, entrega_fecha, entrega_hora,
		                    metodo_pago, estado, a_cuenta, saldo, total, notas)
		VALUES (:numero, :cliente, :direccion, :telefono, :fecha, :entrega_fecha, :entrega_hora,
		        :metodo_pago, :estado, :a_cuenta, :saldo, :total, :notas)
	`
	res, err := tx.NamedExec(qHeader, b)
	if err != nil {
		return 0, fmt.Errorf("InsertBoleta header failed: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("InsertBoleta could not read generated id: %w", err)
	}

	const qItem = `
		INSERT INTO boleta_items (boleta_id, descripcion, tipo, prendas, kilos, lavado, secado, p_unit, importe)
		VALUES (:boleta_id, :descripcion, :tipo, :prendas, :kilos, :lavado, :secado, :p_unit, :importe)
	`
	for i := range items {
		items[i].BoletaID = id
		if _, err := tx.NamedExec(qItem, &items[i]); err != nil {
			return 0, fmt.Errorf("InsertBoleta item %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("InsertBoleta commit failed: %w", err)
	}
	return id, nil
}

// ListBoletas returns one page of headers, newest first, plus the total count
// matching the filters.
func ListBoletas(db *sqlx.DB, limit, offset int, f model.BoletaFilters) ([]model.Boleta, int, error) {
	where, args := filterClause(f)

	var total int
	if err := db.Get(&total, "SELECT COUNT(1) FROM boleta"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count boletas: %w", err)
	}

	q := "SELECT * FROM boleta" + where + " ORDER BY fecha DESC, id DESC LIMIT ? OFFSET ?"
	var rows []model.Boleta
	if err := db.Select(&rows, q, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("failed to list boletas: %w", err)
	}
	return rows, total, nil
}

// SumTotalPeriodo sums boleta totals under the same filter semantics as
// ListBoletas. Returns 0 when nothing matches.
func SumTotalPeriodo(db *sqlx.DB, f model.BoletaFilters) (float64, error) {
	where, args := filterClause(f)
	var total float64
	q := "SELECT COALESCE(SUM(total), 0) FROM boleta" + where
	if err := db.Get(&total, q, args...); err != nil {
		return 0, fmt.Errorf("failed to sum period total: %w", err)
	}
	return total, nil
}

// GetBoleta fetches one header with its items in insertion order. A missing
// id yields a nil header, not an error.
func GetBoleta(db *sqlx.DB, id int64) (*model.Boleta, []model.BoletaItem, error) {
	var b model.Boleta
	err := db.Get(&b, "SELECT * FROM boleta WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to get boleta %d: %w", id, err)
	}

	var items []model.BoletaItem
	const qItems = `SELECT * FROM boleta_items WHERE boleta_id = ? ORDER BY id ASC`
	if err := db.Select(&items, qItems, id); err != nil {
		return nil, nil, fmt.Errorf("failed to get items for boleta %d: %w", id, err)
	}
	return &b, items, nil
}

// ListAllBoletas returns every header, newest first, for the bulk export.
func ListAllBoletas(db *sqlx.DB) ([]model.Boleta, error) {
	var rows []model.Boleta
	if err := db.Select(&rows, "SELECT * FROM boleta ORDER BY fecha DESC, id DESC"); err != nil {
		return nil, fmt.Errorf("failed to list all boletas: %w", err)
	}
	return rows, nil
}

// DeleteBoleta removes the header and all of its items. The sqlite driver
// leaves foreign_keys off unless the DSN enables it, so the child rows are
// deleted explicitly instead of relying on ON DELETE CASCADE. Deleting an
// unknown id is a no-op.
func DeleteBoleta(db *sqlx.DB, id int64) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM boleta_items WHERE boleta_id = ?", id); err != nil {
		return fmt.Errorf("DeleteBoleta items failed: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM boleta WHERE id = ?", id); err != nil {
		return fmt.Errorf("DeleteBoleta header failed: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("DeleteBoleta commit failed: %w", err)
	}
	return nil
}

// UpdateBoletaStatus rewrites the estado field only.
func UpdateBoletaStatus(db *sqlx.DB, id int64, estado string) error {
	if _, err := db.Exec("UPDATE boleta SET estado = ? WHERE id = ?", estado, id); err != nil {
		return fmt.Errorf("UpdateBoletaStatus (id %d) failed: %w", id, err)
	}
	return nil
}
