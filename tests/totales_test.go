package tests

import (
	"testing"

	"libreria/internal/model"
	"libreria/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mov(tipo, metodo string, monto int64) model.Movimiento {
	return model.Movimiento{Tipo: tipo, Metodo: metodo, Monto: decimal.NewFromInt(monto)}
}

func TestCalcularTotales(t *testing.T) {
	totales := service.CalcularTotales(decimal.NewFromInt(1000), []model.Movimiento{
		mov("venta", "efectivo", 500),
		mov("venta", "transferencia", 300),
		mov("egreso", "efectivo", 200),
	})

	assert.Equal(t, "500", totales.PorMetodo["efectivo"].String())
	assert.Equal(t, "300", totales.PorMetodo["transferencia"].String())
	assert.Equal(t, "0", totales.PorMetodo["credito"].String())
	assert.Equal(t, "200", totales.TotalEgresos.String())
	assert.Equal(t, "1300", totales.SaldoEfectivo.String())
	assert.Equal(t, "1600", totales.SaldoTotal.String())
}

func TestCalcularTotalesIndependienteDelOrden(t *testing.T) {
	movs := []model.Movimiento{
		mov("venta", "efectivo", 500),
		mov("egreso", "efectivo", 200),
		mov("venta", "credito", 300),
		mov("venta", "billetera", 150),
	}
	invertidos := make([]model.Movimiento, len(movs))
	for i, m := range movs {
		invertidos[len(movs)-1-i] = m
	}

	a := service.CalcularTotales(decimal.NewFromInt(1000), movs)
	b := service.CalcularTotales(decimal.NewFromInt(1000), invertidos)

	assert.True(t, a.SaldoEfectivo.Equal(b.SaldoEfectivo))
	assert.True(t, a.SaldoTotal.Equal(b.SaldoTotal))
	assert.True(t, a.TotalEgresos.Equal(b.TotalEgresos))
	for metodo, monto := range a.PorMetodo {
		assert.True(t, monto.Equal(b.PorMetodo[metodo]), metodo)
	}
}

func TestCalcularTotalesIgnoraOcultos(t *testing.T) {
	oculto := mov("venta", "efectivo", 999)
	oculto.Oculto = true

	totales := service.CalcularTotales(decimal.Zero, []model.Movimiento{
		mov("venta", "efectivo", 100),
		oculto,
	})

	assert.Equal(t, "100", totales.SaldoTotal.String())
}

func TestCalcularTotalesSinMovimientos(t *testing.T) {
	totales := service.CalcularTotales(decimal.NewFromInt(750), nil)

	assert.Equal(t, "750", totales.SaldoEfectivo.String())
	assert.Equal(t, "750", totales.SaldoTotal.String())
	assert.True(t, totales.TotalEgresos.IsZero())
}
