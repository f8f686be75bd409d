package tests

import (
	"context"
	"testing"

	"libreria/internal/dto"
	"libreria/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cerrarTurno closes the open shift created by abrirTurno.
func cerrarTurno(t *testing.T, svc service.CajaService, turnoID string, contado int64) *dto.CierreResponse {
	t.Helper()
	resp, err := svc.Cerrar(context.Background(), dto.CerrarTurnoRequest{
		TurnoID: turnoID, Admin: adminCred(),
		EfectivoContado: decimal.NewFromInt(contado),
	})
	require.NoError(t, err)
	return resp
}

func TestHistorialSoloTurnosCerrados(t *testing.T) {
	repo := newFakeCajaRepo()
	cajaSvc := service.NewCajaService(repo, newFakeVerificador(), nil)
	histSvc := service.NewHistorialService(repo)

	cerrado := abrirTurno(t, cajaSvc, 1000)
	cerrarTurno(t, cajaSvc, cerrado.ID, 1000)

	abierto := abrirTurno(t, cajaSvc, 500)

	resumen, err := histSvc.Listar(context.Background(), dto.FiltroHistorial{})
	require.NoError(t, err)
	require.Len(t, resumen, 1)
	assert.Equal(t, cerrado.ID, resumen[0].ID)
	assert.NotNil(t, resumen[0].ClosedAt)

	// El turno abierto no es historia todavia.
	_, err = histSvc.Detalle(context.Background(), abierto.ID)
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestHistorialFiltroPeriodo(t *testing.T) {
	repo := newFakeCajaRepo()
	cajaSvc := service.NewCajaService(repo, newFakeVerificador(), nil)
	histSvc := service.NewHistorialService(repo)

	turno := abrirTurno(t, cajaSvc, 100) // periodo manana
	cerrarTurno(t, cajaSvc, turno.ID, 100)

	manana, err := histSvc.Listar(context.Background(), dto.FiltroHistorial{Periodo: "manana"})
	require.NoError(t, err)
	assert.Len(t, manana, 1)

	tarde, err := histSvc.Listar(context.Background(), dto.FiltroHistorial{Periodo: "tarde"})
	require.NoError(t, err)
	assert.Empty(t, tarde)

	_, err = histSvc.Listar(context.Background(), dto.FiltroHistorial{Periodo: "noche"})
	assert.ErrorIs(t, err, service.ErrFormatoInvalido)
}

func TestHistorialDetalleCompleto(t *testing.T) {
	// Un turno con venta editada y egreso anulado: el detalle tiene que
	// reconstruir el libro final, ambas auditorias y los totales congelados.
	repo := newFakeCajaRepo()
	cajaSvc := service.NewCajaService(repo, newFakeVerificador(), nil)
	histSvc := service.NewHistorialService(repo)

	turno := abrirTurno(t, cajaSvc, 1000)

	venta := registrar(t, cajaSvc, turno.ID, dto.RegistrarMovimientoRequest{
		Tipo: "venta", Metodo: "efectivo", Monto: decimal.NewFromInt(500), Descripcion: "Facundo",
	})
	egreso := registrar(t, cajaSvc, turno.ID, dto.RegistrarMovimientoRequest{
		Tipo: "egreso", Metodo: "efectivo", Monto: decimal.NewFromInt(300), Descripcion: "flete",
	})

	nuevoMonto := decimal.NewFromInt(550)
	_, err := cajaSvc.EditarMovimiento(context.Background(), venta.ID, dto.EditarMovimientoRequest{
		Credencial: dto.CredencialRequest{Identidad: "F", Secreto: "f12"},
		Motivo:     "precio corregido",
		Monto:      &nuevoMonto,
	})
	require.NoError(t, err)

	require.NoError(t, cajaSvc.AnularMovimiento(context.Background(), egreso.ID, dto.AnularMovimientoRequest{
		Credencial: dto.CredencialRequest{Identidad: "F", Secreto: "f12"},
		Motivo:     "egreso duplicado",
	}))

	cerrarTurno(t, cajaSvc, turno.ID, 1550)

	detalle, err := histSvc.Detalle(context.Background(), turno.ID)
	require.NoError(t, err)

	// Libro final: solo la venta editada.
	require.Len(t, detalle.Movimientos, 1)
	assert.Equal(t, "550", detalle.Movimientos[0].Monto.String())

	require.Len(t, detalle.Ediciones, 1)
	assert.Equal(t, "500", detalle.Ediciones[0].MontoAnterior.String())
	require.Len(t, detalle.Bajas, 1)
	assert.Equal(t, "egreso", detalle.Bajas[0].TipoAnterior)
	assert.Equal(t, "300", detalle.Bajas[0].MontoAnterior.String())

	// Totales congelados: 1000 + 550, sin el egreso anulado.
	assert.Equal(t, "1550", detalle.Totales.SaldoEfectivo.String())
	require.NotNil(t, detalle.EfectivoContado)
	assert.Equal(t, "1550", detalle.EfectivoContado.String())
}
