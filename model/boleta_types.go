package model

import "database/sql"

// Estado values for a boleta.
const (
	EstadoRegistrado = "registrado"
	EstadoEntregado  = "entregado"
)

// Tipo values for a boleta item.
const (
	TipoKilogramo = "kilogramo"
	TipoUnidad    = "unidad"
	TipoOtro      = "otro"
)

// MetodoPagoDefault is used when the form does not carry a payment method.
const MetodoPagoDefault = "efectivo"

// Boleta is the invoice header. Total and Saldo are fixed at creation time:
// Total is the sum of the item subtotals and Saldo = Total - ACuenta.
type Boleta struct {
	ID           int64          `db:"id" json:"id"`
	Numero       sql.NullString `db:"numero" json:"numero"`
	Cliente      string         `db:"cliente" json:"cliente"`
	Direccion    string         `db:"direccion" json:"direccion"`
	Telefono     string         `db:"telefono" json:"telefono"`
	Fecha        string         `db:"fecha" json:"fecha"`
	EntregaFecha string         `db:"entrega_fecha" json:"entregaFecha"`
	EntregaHora  string         `db:"entrega_hora" json:"entregaHora"`
	MetodoPago   string         `db:"metodo_pago" json:"metodoPago"`
	Estado       string         `db:"estado" json:"estado"`
	ACuenta      float64        `db:"a_cuenta" json:"aCuenta"`
	Saldo        float64        `db:"saldo" json:"saldo"`
	Total        float64        `db:"total" json:"total"`
	Notas        string         `db:"notas" json:"notas"`
}

// BoletaItem is one billable line of a boleta. Exactly one of Prendas or
// Kilos carries the quantity, depending on Tipo. Secado is kept for schema
// compatibility and is never filled by the current workflow.
type BoletaItem struct {
	ID          int64          `db:"id" json:"id"`
	BoletaID    int64          `db:"boleta_id" json:"boletaId"`
	Descripcion string         `db:"descripcion" json:"descripcion"`
	Tipo        string         `db:"tipo" json:"tipo"`
	Prendas     int            `db:"prendas" json:"prendas"`
	Kilos       float64        `db:"kilos" json:"kilos"`
	Lavado      string         `db:"lavado" json:"lavado"`
	Secado      sql.NullString `db:"secado" json:"secado"`
	PUnit       float64        `db:"p_unit" json:"pUnit"`
	Importe     float64        `db:"importe" json:"importe"`
}

// BoletaFilters narrows listings and period totals. Zero values mean "no
// filter"; the conditions combine with AND.
type BoletaFilters struct {
	Cliente string
	Desde   string
	Hasta   string
}
