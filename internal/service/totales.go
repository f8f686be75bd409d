package service

import (
	"libreria/internal/dto"
	"libreria/internal/model"

	"github.com/shopspring/decimal"
)

// Metodos lists every accepted payment method, in display order.
var Metodos = []string{"efectivo", "transferencia", "billetera", "debito", "credito", "otro"}

// CalcularTotales derives the running totals of a shift from its opening
// amount and movement list. Pure function: same inputs, same outputs,
// regardless of the order movements were registered in.
//
// Outflows (egresos) reduce both balances: the cash drawer pays them, and
// they are money out of the business either way.
func CalcularTotales(montoInicial decimal.Decimal, movimientos []model.Movimiento) dto.TotalesResponse {
	porMetodo := make(map[string]decimal.Decimal, len(Metodos))
	for _, m := range Metodos {
		porMetodo[m] = decimal.Zero
	}

	totalVentas := decimal.Zero
	totalEgresos := decimal.Zero

	for _, m := range movimientos {
		if m.Oculto {
			continue
		}
		switch m.Tipo {
		case "venta":
			porMetodo[m.Metodo] = porMetodo[m.Metodo].Add(m.Monto)
			totalVentas = totalVentas.Add(m.Monto)
		case "egreso":
			totalEgresos = totalEgresos.Add(m.Monto)
		}
	}

	return dto.TotalesResponse{
		PorMetodo:     porMetodo,
		TotalEgresos:  totalEgresos,
		SaldoEfectivo: montoInicial.Add(porMetodo["efectivo"]).Sub(totalEgresos),
		SaldoTotal:    montoInicial.Add(totalVentas).Sub(totalEgresos),
	}
}
