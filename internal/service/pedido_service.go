package service

import (
	"context"
	"errors"
	"time"

	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// transicionesPedido encodes the order state machine. "cancelado" and
// "entregado" are terminal.
var transicionesPedido = map[string][]string{
	"pendiente": {"encargado", "cancelado"},
	"encargado": {"recibido", "cancelado"},
	"recibido":  {"entregado", "cancelado"},
	"entregado": {},
	"cancelado": {},
}

type PedidoService interface {
	Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error)
	Obtener(ctx context.Context, id string) (*dto.PedidoResponse, error)
	Listar(ctx context.Context, estado string) ([]dto.PedidoResponse, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error)
	// CambiarEstado advances the order along the state machine; any move not
	// allowed by it fails with ErrTransicionInvalida.
	CambiarEstado(ctx context.Context, id string, nuevoEstado string) (*dto.PedidoResponse, error)
}

type pedidoService struct {
	repo repository.PedidoRepository
}

func NewPedidoService(repo repository.PedidoRepository) PedidoService {
	return &pedidoService{repo: repo}
}

func (s *pedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	if req.Sena.IsNegative() {
		return nil, ErrMontoInvalido
	}
	pedido := &model.Pedido{
		Cliente:  req.Cliente,
		Telefono: req.Telefono,
		Titulo:   req.Titulo,
		ISBN:     req.ISBN,
		Sena:     req.Sena,
		Estado:   "pendiente",
		Notas:    req.Notas,
	}
	if err := s.repo.Create(ctx, pedido); err != nil {
		return nil, err
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) Obtener(ctx context.Context, id string) (*dto.PedidoResponse, error) {
	pedido, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) Listar(ctx context.Context, estado string) ([]dto.PedidoResponse, error) {
	if estado != "" {
		if _, ok := transicionesPedido[estado]; !ok {
			return nil, ErrFormatoInvalido
		}
	}
	pedidos, err := s.repo.List(ctx, estado)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for i := range pedidos {
		out = append(out, pedidoToResponse(&pedidos[i]))
	}
	return out, nil
}

func (s *pedidoService) Actualizar(ctx context.Context, id string, req dto.ActualizarPedidoRequest) (*dto.PedidoResponse, error) {
	pedido, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Cliente != nil {
		pedido.Cliente = *req.Cliente
	}
	if req.Telefono != nil {
		pedido.Telefono = *req.Telefono
	}
	if req.Titulo != nil {
		pedido.Titulo = *req.Titulo
	}
	if req.ISBN != nil {
		pedido.ISBN = req.ISBN
	}
	if req.Sena != nil {
		if req.Sena.IsNegative() {
			return nil, ErrMontoInvalido
		}
		pedido.Sena = *req.Sena
	}
	if req.Notas != nil {
		pedido.Notas = *req.Notas
	}

	if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, err
	}
	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) CambiarEstado(ctx context.Context, id string, nuevoEstado string) (*dto.PedidoResponse, error) {
	pedido, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	permitidos, ok := transicionesPedido[pedido.Estado]
	if !ok {
		return nil, ErrTransicionInvalida
	}
	valido := false
	for _, e := range permitidos {
		if e == nuevoEstado {
			valido = true
			break
		}
	}
	if !valido {
		return nil, ErrTransicionInvalida
	}

	anterior := pedido.Estado
	pedido.Estado = nuevoEstado
	if err := s.repo.Update(ctx, pedido); err != nil {
		return nil, err
	}

	log.Info().
		Str("pedido_id", pedido.ID.String()).
		Str("de", anterior).
		Str("a", nuevoEstado).
		Msg("pedido cambio de estado")

	resp := pedidoToResponse(pedido)
	return &resp, nil
}

func (s *pedidoService) buscar(ctx context.Context, id string) (*model.Pedido, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrFormatoInvalido
	}
	pedido, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return pedido, nil
}

func pedidoToResponse(p *model.Pedido) dto.PedidoResponse {
	return dto.PedidoResponse{
		ID:        p.ID.String(),
		Cliente:   p.Cliente,
		Telefono:  p.Telefono,
		Titulo:    p.Titulo,
		ISBN:      p.ISBN,
		Sena:      p.Sena,
		Estado:    p.Estado,
		Notas:     p.Notas,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
