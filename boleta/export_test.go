package boleta

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavanderia/database"
	"lavanderia/model"
)

func TestExportCSV(t *testing.T) {
	db := newTestDB(t)
	_, err := database.InsertBoleta(db, &model.Boleta{
		Cliente: "María", Telefono: "987654321", Fecha: "2026-08-30 10:00:00",
		MetodoPago: model.MetodoPagoDefault, Estado: model.EstadoRegistrado,
		Total: 24, ACuenta: 10, Saldo: 14,
	}, []model.BoletaItem{
		{Descripcion: "Kilos", Tipo: model.TipoKilogramo, Kilos: 3.5, Lavado: "normal", PUnit: 4, Importe: 14},
		{Descripcion: "Camisas", Tipo: model.TipoUnidad, Prendas: 2, Lavado: "normal", PUnit: 5, Importe: 10},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/export.csv", nil)
	rec := httptest.NewRecorder()
	ExportCSVHandler(db)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=boletas_")

	body := rec.Body.Bytes()
	require.True(t, bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}), "export must start with a UTF-8 BOM")

	lines := strings.Split(strings.TrimRight(string(body[3:]), "\r\n"), "\r\n")
	require.Len(t, lines, 3, "header plus one row per item")

	header := strings.Split(lines[0], ";")
	assert.Equal(t, exportHeader, header)

	row := strings.Split(lines[1], ";")
	require.Len(t, row, len(exportHeader))
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "María", row[2])
	assert.Equal(t, "24.00", row[7])
	assert.Equal(t, "Kilos", row[12])
	assert.Equal(t, "3.50", row[15])

	row2 := strings.Split(lines[2], ";")
	assert.Equal(t, "Camisas", row2[12])
	assert.Equal(t, "2", row2[14])
}

func TestExportCSVGuardsFormulaInjection(t *testing.T) {
	db := newTestDB(t)
	_, err := database.InsertBoleta(db, &model.Boleta{
		Cliente: "=SUM(A1)", Fecha: "2026-08-30 10:00:00",
		MetodoPago: model.MetodoPagoDefault, Estado: model.EstadoRegistrado,
		Total: 5, Saldo: 5, Notas: "+cmd",
	}, []model.BoletaItem{
		{Descripcion: "@HYPERLINK", Tipo: model.TipoOtro, Lavado: "normal", PUnit: 5, Importe: 5},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	ExportCSVHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/export.csv", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "'=SUM(A1)")
	assert.Contains(t, body, "'+cmd")
	assert.Contains(t, body, "'@HYPERLINK")
	assert.NotContains(t, body, ";=SUM(A1);")
}

func TestSanitizeCell(t *testing.T) {
	assert.Equal(t, "'=SUM(A1)", sanitizeCell("=SUM(A1)"))
	assert.Equal(t, "'-5", sanitizeCell("-5"))
	assert.Equal(t, "'+51", sanitizeCell("+51"))
	assert.Equal(t, "'@x", sanitizeCell("@x"))
	assert.Equal(t, "María", sanitizeCell("María"))
	assert.Equal(t, "", sanitizeCell(""))
}
