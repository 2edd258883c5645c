// Package boleta holds the invoice handlers: creation, listing, detail,
// deletion, status toggling and the CSV export.
package boleta

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"lavanderia/auth"
	"lavanderia/config"
	"lavanderia/database"
	"lavanderia/model"
	"lavanderia/pricing"
	"lavanderia/render"
	"lavanderia/whatsapp"
)

const pageSize = 20

// blankRows is how many empty item rows the creation form offers.
const blankRows = 5

type nuevaForm struct {
	Rows []struct{}
}

type createOutcome struct {
	id     int64
	waLink string
}

// valueAt aligns the parallel item field lists positionally; short lists read
// as empty strings, mirroring a zip-longest over the form arrays.
func valueAt(xs []string, i int) string {
	if i < len(xs) {
		return xs[i]
	}
	return ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// createBoleta runs the creation workflow over the submitted form. It
// returns a validation message instead of an outcome when the input is
// rejected; a non-nil error means the store failed.
func createBoleta(db *sqlx.DB, cfg config.Config, r *http.Request) (*createOutcome, string, error) {
	cliente := strings.TrimSpace(r.FormValue("cliente"))
	direccion := strings.TrimSpace(r.FormValue("direccion"))
	telefono := strings.TrimSpace(r.FormValue("telefono"))
	entregaFecha := r.FormValue("entrega_fecha")
	entregaHora := r.FormValue("entrega_hora")
	metodoPago := r.FormValue("metodo_pago")
	if metodoPago == "" {
		metodoPago = model.MetodoPagoDefault
	}
	aCuenta := pricing.ParseFloat(r.FormValue("a_cuenta"), 0)
	notas := strings.TrimSpace(r.FormValue("notas"))

	if cliente == "" {
		return nil, "El nombre del cliente es obligatorio", nil
	}

	tipos := r.Form["item_tipo[]"]
	descs := r.Form["item_desc[]"]
	cantidades := r.Form["item_cantidad[]"]
	servicios := r.Form["item_servicio[]"]
	punits := r.Form["item_punit[]"]

	n := len(tipos)
	for _, xs := range [][]string{descs, cantidades, servicios, punits} {
		if len(xs) > n {
			n = len(xs)
		}
	}

	var items []model.BoletaItem
	var total float64
	for i := 0; i < n; i++ {
		tipo := strings.TrimSpace(valueAt(tipos, i))
		if tipo == "" {
			tipo = model.TipoOtro
		}
		desc := strings.TrimSpace(valueAt(descs, i))
		cantidad := pricing.ParseFloat(valueAt(cantidades, i), 0)
		pUnit := pricing.ParseFloat(valueAt(punits, i), 0)
		servicio := strings.TrimSpace(valueAt(servicios, i))
		if servicio == "" {
			servicio = "normal"
		}

		// Blank rows are dropped before the description default fills in.
		if desc == "" && pUnit == 0 && cantidad == 0 {
			continue
		}
		if desc == "" {
			desc = capitalize(tipo)
		}

		importe := pricing.ItemSubtotal(cantidad, pUnit)

		var prendas int
		var kilos float64
		switch tipo {
		case model.TipoUnidad:
			prendas = int(cantidad)
		case model.TipoKilogramo:
			kilos = cantidad
		}

		total += importe
		items = append(items, model.BoletaItem{
			Descripcion: desc,
			Tipo:        tipo,
			Prendas:     prendas,
			Kilos:       kilos,
			Lavado:      servicio,
			PUnit:       pUnit,
			Importe:     importe,
		})
	}

	if len(items) == 0 {
		return nil, "Agrega al menos un ítem con cantidad/precio.", nil
	}

	total = pricing.Round2(total)
	header := &model.Boleta{
		Cliente:      cliente,
		Direccion:    direccion,
		Telefono:     telefono,
		Fecha:        time.Now().Format("2006-01-02 15:04:05"),
		EntregaFecha: entregaFecha,
		EntregaHora:  entregaHora,
		MetodoPago:   metodoPago,
		Estado:       model.EstadoRegistrado,
		ACuenta:      aCuenta,
		Saldo:        pricing.Round2(total - aCuenta),
		Total:        total,
		Notas:        notas,
	}

	id, err := database.InsertBoleta(db, header, items)
	if err != nil {
		return nil, "", err
	}
	header.ID = id

	destino, ok := whatsapp.NormalizePhone(telefono)
	if !ok {
		destino = cfg.ShopWhatsApp
	}
	msg := whatsapp.ComposeMessage(header, items, cfg.ShopAddress)
	return &createOutcome{id: id, waLink: whatsapp.Link(destino, msg)}, "", nil
}

// NewBoletaHandler serves the creation form and processes submissions. The
// page is reachable without a login, like the counter workflow it mirrors.
func NewBoletaHandler(db *sqlx.DB, cfg config.Config, sessions *auth.Sessions, pages *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := sessions.Read(r)
		form := nuevaForm{Rows: make([]struct{}, blankRows)}

		if r.Method != http.MethodPost {
			pages.Show(w, r, "boleta_nueva.html", claims.User, claims.Admin, form)
			return
		}

		if err := r.ParseForm(); err != nil {
			pages.Show(w, r, "boleta_nueva.html", claims.User, claims.Admin, form,
				render.Flash{Category: "error", Message: "Ocurrió un error: " + err.Error()})
			return
		}

		outcome, validation, err := createBoleta(db, cfg, r)
		if err != nil {
			logrus.Errorf("failed to create boleta: %v", err)
			pages.Show(w, r, "boleta_nueva.html", claims.User, claims.Admin, form,
				render.Flash{Category: "error", Message: "Ocurrió un error: " + err.Error()})
			return
		}
		if validation != "" {
			pages.Show(w, r, "boleta_nueva.html", claims.User, claims.Admin, form,
				render.Flash{Category: "error", Message: validation})
			return
		}

		render.AddFlash(w, "success", "Boleta creada con éxito")
		target := fmt.Sprintf("/boleta/%d?wa=%s", outcome.id, url.QueryEscape(outcome.waLink))
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

type listPage struct {
	Filas        []model.Boleta
	Pagina       int
	TotalPaginas int
	TotalPeriodo float64
	Filtros      model.BoletaFilters
}

// ListBoletasHandler serves the paginated listing with its period total.
// The page parameter keeps whatever value the query carries; a page below 1
// produces a negative offset, which the storage engine treats as zero.
func ListBoletasHandler(db *sqlx.DB, sessions *auth.Sessions, pages *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := sessions.Read(r)
		q := r.URL.Query()

		pagina := 1
		if raw := q.Get("page"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				pagina = v
			}
		}
		filters := model.BoletaFilters{
			Cliente: strings.TrimSpace(q.Get("cliente")),
			Desde:   q.Get("desde"),
			Hasta:   q.Get("hasta"),
		}

		filas, total, err := database.ListBoletas(db, pageSize, (pagina-1)*pageSize, filters)
		if err != nil {
			logrus.Errorf("failed to list boletas: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		totalPeriodo, err := database.SumTotalPeriodo(db, filters)
		if err != nil {
			logrus.Errorf("failed to sum period total: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		totalPaginas := (total + pageSize - 1) / pageSize
		if totalPaginas < 1 {
			totalPaginas = 1
		}

		pages.Show(w, r, "boletas.html", claims.User, claims.Admin, listPage{
			Filas:        filas,
			Pagina:       pagina,
			TotalPaginas: totalPaginas,
			TotalPeriodo: totalPeriodo,
			Filtros:      filters,
		})
	}
}

type detailPage struct {
	Cab    *model.Boleta
	Items  []model.BoletaItem
	WaLink string
}

// boletaID extracts the numeric id that follows prefix in the request path.
func boletaID(r *http.Request, prefix string) (int64, bool) {
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// DetailHandler shows one boleta with its items. The optional wa query
// parameter carries the pre-built WhatsApp link from the creation redirect.
func DetailHandler(db *sqlx.DB, sessions *auth.Sessions, pages *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := boletaID(r, "/boleta/")
		if !ok {
			http.NotFound(w, r)
			return
		}

		cab, items, err := database.GetBoleta(db, id)
		if err != nil {
			logrus.Errorf("failed to load boleta %d: %v", id, err)
			render.AddFlash(w, "error", "Error al cargar la boleta: "+err.Error())
			http.Redirect(w, r, "/boletas", http.StatusSeeOther)
			return
		}
		if cab == nil {
			render.AddFlash(w, "error", "Boleta no encontrada")
			http.Redirect(w, r, "/boletas", http.StatusSeeOther)
			return
		}

		claims := sessions.Read(r)
		pages.Show(w, r, "boleta_detalle.html", claims.User, claims.Admin, detailPage{
			Cab:    cab,
			Items:  items,
			WaLink: r.URL.Query().Get("wa"),
		})
	}
}

// DeleteHandler removes a boleta and its items. Admin only; POST only.
func DeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := boletaID(r, "/boleta/eliminar/")
		if !ok {
			http.NotFound(w, r)
			return
		}

		if err := database.DeleteBoleta(db, id); err != nil {
			logrus.Errorf("failed to delete boleta %d: %v", id, err)
			render.AddFlash(w, "error", "Error al eliminar la boleta: "+err.Error())
		} else {
			render.AddFlash(w, "success", fmt.Sprintf("Boleta #%d eliminada correctamente.", id))
		}
		http.Redirect(w, r, "/boletas", http.StatusSeeOther)
	}
}

// ChangeStatusHandler toggles a boleta between registrado and entregado.
// Admin only; POST only.
func ChangeStatusHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := boletaID(r, "/boleta/cambiar-estado/")
		if !ok {
			http.NotFound(w, r)
			return
		}

		cab, _, err := database.GetBoleta(db, id)
		if err != nil {
			logrus.Errorf("failed to load boleta %d: %v", id, err)
			render.AddFlash(w, "error", "Error al actualizar el estado: "+err.Error())
			http.Redirect(w, r, "/boletas", http.StatusSeeOther)
			return
		}
		if cab == nil {
			render.AddFlash(w, "error", "Boleta no encontrada.")
			http.Redirect(w, r, "/boletas", http.StatusSeeOther)
			return
		}

		nuevoEstado := model.EstadoEntregado
		if cab.Estado == model.EstadoEntregado {
			nuevoEstado = model.EstadoRegistrado
		}
		if err := database.UpdateBoletaStatus(db, id, nuevoEstado); err != nil {
			logrus.Errorf("failed to update boleta %d status: %v", id, err)
			render.AddFlash(w, "error", "Error al actualizar el estado: "+err.Error())
		} else {
			render.AddFlash(w, "success",
				fmt.Sprintf("Estado de la boleta #%d actualizado a '%s'.", id, strings.ToUpper(nuevoEstado)))
		}
		http.Redirect(w, r, "/boletas", http.StatusSeeOther)
	}
}
