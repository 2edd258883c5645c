package whatsapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavanderia/model"
)

func TestNormalizePhone(t *testing.T) {
	got, ok := NormalizePhone("987654321")
	require.True(t, ok)
	assert.Equal(t, "51987654321", got)

	got, ok = NormalizePhone("051987654321")
	require.True(t, ok)
	assert.Equal(t, "51987654321", got)

	got, ok = NormalizePhone("+51 987-654-321")
	require.True(t, ok)
	assert.Equal(t, "51987654321", got)

	got, ok = NormalizePhone("0987654321")
	require.True(t, ok)
	assert.Equal(t, "51987654321", got)

	got, ok = NormalizePhone("51987654321")
	require.True(t, ok)
	assert.Equal(t, "51987654321", got)

	_, ok = NormalizePhone("")
	assert.False(t, ok)

	_, ok = NormalizePhone("000")
	assert.False(t, ok)

	_, ok = NormalizePhone("sin número")
	assert.False(t, ok)
}

func TestComposeMessage(t *testing.T) {
	b := &model.Boleta{
		Cliente:      "María",
		Direccion:    "",
		EntregaFecha: "",
		EntregaHora:  "",
		Total:        35,
		ACuenta:      10,
		Saldo:        25,
	}
	items := []model.BoletaItem{
		{Descripcion: "Kilos", Importe: 20},
		{Descripcion: "Edredón", Importe: 15},
	}

	msg := ComposeMessage(b, items, "Jr. Dos de Mayo 123")
	assert.Contains(t, msg, "Hola María")
	assert.Contains(t, msg, "Total: S/ 35.00. A cuenta: S/ 10.00. Saldo: S/ 25.00.")
	assert.Contains(t, msg, "Entrega: - .")
	assert.Contains(t, msg, "Dirección: Jr. Dos de Mayo 123.")
	assert.Contains(t, msg, "• Kilos - S/ 20.00")
	assert.Contains(t, msg, "• Edredón - S/ 15.00")
}

func TestLink(t *testing.T) {
	link := Link("51987654321", "Hola\nTotal: S/ 35.00")
	assert.True(t, strings.HasPrefix(link, "https://wa.me/51987654321?text="))
	assert.Contains(t, link, "%0A")
	assert.NotContains(t, link, "\n")
}
