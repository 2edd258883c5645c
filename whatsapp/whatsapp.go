// Package whatsapp builds the pre-filled outbound message sent to a customer
// after a boleta is registered.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"lavanderia/model"
)

// countryPrefix is prepended to local numbers (Peru).
const countryPrefix = "51"

// NormalizePhone strips everything but digits, drops leading zeros and
// ensures the country prefix. Returns ok=false when no digits remain.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		return "", false
	}
	if !strings.HasPrefix(digits, countryPrefix) {
		digits = countryPrefix + digits
	}
	return digits, true
}

// ComposeMessage renders the confirmation text: greeting, amounts, delivery
// slot, address and the itemized detail. shopAddress fills in when the boleta
// has no delivery address.
func ComposeMessage(b *model.Boleta, items []model.BoletaItem, shopAddress string) string {
	entregaFecha := b.EntregaFecha
	if entregaFecha == "" {
		entregaFecha = "-"
	}
	direccion := b.Direccion
	if direccion == "" {
		direccion = shopAddress
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hola %s, gracias por elegir Lavandería RÍOS.\n", b.Cliente)
	fmt.Fprintf(&sb, "Total: S/ %.2f. A cuenta: S/ %.2f. Saldo: S/ %.2f.\n", b.Total, b.ACuenta, b.Saldo)
	fmt.Fprintf(&sb, "Entrega: %s %s.\n", entregaFecha, b.EntregaHora)
	fmt.Fprintf(&sb, "Dirección: %s.\n", direccion)
	sb.WriteString("Detalle:")
	for _, it := range items {
		fmt.Fprintf(&sb, "\n• %s - S/ %.2f", it.Descripcion, it.Importe)
	}
	return sb.String()
}

// Link builds the wa.me deep link for a normalized phone number.
func Link(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}
