package tests

import (
	"context"
	"testing"

	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"
	"libreria/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory PedidoRepository ───────────────────────────────────────────────

type fakePedidoRepo struct {
	pedidos map[uuid.UUID]*model.Pedido
}

func newFakePedidoRepo() *fakePedidoRepo {
	return &fakePedidoRepo{pedidos: make(map[uuid.UUID]*model.Pedido)}
}

func (r *fakePedidoRepo) Create(_ context.Context, p *model.Pedido) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copia := *p
	r.pedidos[p.ID] = &copia
	return nil
}

func (r *fakePedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *fakePedidoRepo) List(_ context.Context, estado string) ([]model.Pedido, error) {
	var out []model.Pedido
	for _, p := range r.pedidos {
		if estado == "" || p.Estado == estado {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePedidoRepo) Update(_ context.Context, p *model.Pedido) error {
	copia := *p
	r.pedidos[p.ID] = &copia
	return nil
}

var _ repository.PedidoRepository = (*fakePedidoRepo)(nil)

func crearPedido(t *testing.T, svc service.PedidoService) *dto.PedidoResponse {
	t.Helper()
	resp, err := svc.Crear(context.Background(), dto.CrearPedidoRequest{
		Cliente: "Ana", Telefono: "3511234567", Titulo: "Los Suicidas",
		Sena: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	return resp
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearPedido(t *testing.T) {
	svc := service.NewPedidoService(newFakePedidoRepo())

	resp := crearPedido(t, svc)
	assert.Equal(t, "pendiente", resp.Estado)
	assert.Equal(t, "5000", resp.Sena.String())
}

func TestTransicionesPedido(t *testing.T) {
	svc := service.NewPedidoService(newFakePedidoRepo())
	pedido := crearPedido(t, svc)

	// El camino feliz completo.
	for _, estado := range []string{"encargado", "recibido", "entregado"} {
		resp, err := svc.CambiarEstado(context.Background(), pedido.ID, estado)
		require.NoError(t, err)
		assert.Equal(t, estado, resp.Estado)
	}

	// Entregado es terminal.
	_, err := svc.CambiarEstado(context.Background(), pedido.ID, "cancelado")
	assert.ErrorIs(t, err, service.ErrTransicionInvalida)
}

func TestTransicionSalteada(t *testing.T) {
	svc := service.NewPedidoService(newFakePedidoRepo())
	pedido := crearPedido(t, svc)

	// No se puede saltar de pendiente a recibido.
	_, err := svc.CambiarEstado(context.Background(), pedido.ID, "recibido")
	assert.ErrorIs(t, err, service.ErrTransicionInvalida)
}

func TestCancelarDesdeNoTerminal(t *testing.T) {
	svc := service.NewPedidoService(newFakePedidoRepo())

	pedido := crearPedido(t, svc)
	_, err := svc.CambiarEstado(context.Background(), pedido.ID, "encargado")
	require.NoError(t, err)

	resp, err := svc.CambiarEstado(context.Background(), pedido.ID, "cancelado")
	require.NoError(t, err)
	assert.Equal(t, "cancelado", resp.Estado)

	// Cancelado tambien es terminal.
	_, err = svc.CambiarEstado(context.Background(), pedido.ID, "encargado")
	assert.ErrorIs(t, err, service.ErrTransicionInvalida)
}

func TestListarPedidosPorEstado(t *testing.T) {
	svc := service.NewPedidoService(newFakePedidoRepo())

	a := crearPedido(t, svc)
	crearPedido(t, svc)
	_, err := svc.CambiarEstado(context.Background(), a.ID, "encargado")
	require.NoError(t, err)

	pendientes, err := svc.Listar(context.Background(), "pendiente")
	require.NoError(t, err)
	assert.Len(t, pendientes, 1)

	_, err = svc.Listar(context.Background(), "inexistente")
	assert.ErrorIs(t, err, service.ErrFormatoInvalido)
}
