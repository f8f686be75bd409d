package service

import (
	"context"
	"errors"
	"time"

	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"
	"libreria/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type FaltanteService interface {
	Crear(ctx context.Context, req dto.CrearFaltanteRequest) (*dto.FaltanteResponse, error)
	Listar(ctx context.Context) ([]dto.FaltanteResponse, error)
	Eliminar(ctx context.Context, id string) error
}

type faltanteService struct {
	repo       repository.FaltanteRepository
	dispatcher *worker.Dispatcher // nil when async jobs are disabled (tests)
}

func NewFaltanteService(repo repository.FaltanteRepository, dispatcher *worker.Dispatcher) FaltanteService {
	return &faltanteService{repo: repo, dispatcher: dispatcher}
}

func (s *faltanteService) Crear(ctx context.Context, req dto.CrearFaltanteRequest) (*dto.FaltanteResponse, error) {
	cantidad := req.Cantidad
	if cantidad < 1 {
		cantidad = 1
	}
	faltante := &model.Faltante{
		ISBN:     req.ISBN,
		Titulo:   req.Titulo,
		Cantidad: cantidad,
		Nota:     req.Nota,
	}
	if err := s.repo.Create(ctx, faltante); err != nil {
		return nil, err
	}

	// Warm the metadata cache in the background so the lookup is ready when
	// the entry gets reviewed. Best effort.
	if s.dispatcher != nil && req.ISBN != nil && *req.ISBN != "" {
		if err := s.dispatcher.EnqueueMetadata(ctx, *req.ISBN); err != nil {
			log.Error().Err(err).Str("isbn", *req.ISBN).Msg("no se pudo encolar el prefetch de metadatos")
		}
	}

	resp := faltanteToResponse(faltante)
	return &resp, nil
}

func (s *faltanteService) Listar(ctx context.Context) ([]dto.FaltanteResponse, error) {
	faltantes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FaltanteResponse, 0, len(faltantes))
	for i := range faltantes {
		out = append(out, faltanteToResponse(&faltantes[i]))
	}
	return out, nil
}

func (s *faltanteService) Eliminar(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrFormatoInvalido
	}
	if _, err := s.repo.FindByID(ctx, parsed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, parsed)
}

func faltanteToResponse(f *model.Faltante) dto.FaltanteResponse {
	return dto.FaltanteResponse{
		ID:        f.ID.String(),
		ISBN:      f.ISBN,
		Titulo:    f.Titulo,
		Cantidad:  f.Cantidad,
		Nota:      f.Nota,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}
