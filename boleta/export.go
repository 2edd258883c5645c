package boleta

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"lavanderia/database"
)

var exportHeader = []string{
	"Boleta_ID", "Fecha_Emision", "Cliente", "Telefono", "Direccion",
	"Metodo_Pago_Boleta", "Estado_Boleta", "Total_Boleta", "A_Cuenta_Boleta", "Saldo_Boleta", "Notas_Boleta",
	"Item_ID", "Item_Descripcion", "Item_Tipo", "Item_Cantidad_Unidades", "Item_Cantidad_Kilos",
	"Item_Servicio", "Item_Precio_Unitario", "Item_Importe",
}

// sanitizeCell guards against spreadsheet formula injection: a leading
// formula trigger gets a quote prefix.
func sanitizeCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}
	return s
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ExportCSVHandler streams every boleta joined with its items, one row per
// item with the header fields repeated. Output is ;-delimited UTF-8 with a
// byte-order mark so spreadsheet software picks the encoding up.
func ExportCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filas, err := database.ListAllBoletas(db)
		if err != nil {
			logrus.Errorf("failed to load boletas for export: %v", err)
			http.Error(w, "Failed to export boletas: "+err.Error(), http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("boletas_%s.csv", time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)

		// The UTF8BOM encoder emits the byte-order mark ahead of the first write.
		cw := csv.NewWriter(transform.NewWriter(w, unicode.UTF8BOM.NewEncoder()))
		cw.Comma = ';'
		cw.UseCRLF = true

		if err := cw.Write(exportHeader); err != nil {
			logrus.Errorf("failed to write export header: %v", err)
			return
		}

		for i := range filas {
			b := &filas[i]
			_, items, err := database.GetBoleta(db, b.ID)
			if err != nil {
				logrus.Errorf("failed to load items for boleta %d: %v", b.ID, err)
				return
			}
			for _, it := range items {
				record := []string{
					strconv.FormatInt(b.ID, 10),
					b.Fecha,
					sanitizeCell(b.Cliente),
					sanitizeCell(b.Telefono),
					sanitizeCell(b.Direccion),
					b.MetodoPago,
					b.Estado,
					money(b.Total),
					money(b.ACuenta),
					money(b.Saldo),
					sanitizeCell(b.Notas),
					strconv.FormatInt(it.ID, 10),
					sanitizeCell(it.Descripcion),
					it.Tipo,
					strconv.Itoa(it.Prendas),
					strconv.FormatFloat(it.Kilos, 'f', 2, 64),
					it.Lavado,
					money(it.PUnit),
					money(it.Importe),
				}
				if err := cw.Write(record); err != nil {
					logrus.Errorf("failed to write export row for boleta %d: %v", b.ID, err)
					return
				}
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			logrus.Errorf("failed to flush export: %v", err)
		}
	}
}
