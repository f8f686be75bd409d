package service

import (
	"context"
	"errors"

	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LibroService interface {
	Crear(ctx context.Context, req dto.CrearLibroRequest) (*dto.LibroResponse, error)
	Obtener(ctx context.Context, id string) (*dto.LibroResponse, error)
	Listar(ctx context.Context, filter dto.LibroFilter) ([]dto.LibroResponse, int64, error)
	Actualizar(ctx context.Context, id string, req dto.ActualizarLibroRequest) (*dto.LibroResponse, error)
	// AjustarStock moves stock by delta and returns the resulting row.
	// Decrements floor at zero.
	AjustarStock(ctx context.Context, id string, delta int) (*dto.LibroResponse, error)
	// Bajas lists written-off titles (stock at zero).
	Bajas(ctx context.Context) ([]dto.LibroResponse, error)
}

type libroService struct {
	repo repository.LibroRepository
}

func NewLibroService(repo repository.LibroRepository) LibroService {
	return &libroService{repo: repo}
}

func (s *libroService) Crear(ctx context.Context, req dto.CrearLibroRequest) (*dto.LibroResponse, error) {
	if _, err := s.repo.FindByISBN(ctx, req.ISBN); err == nil {
		return nil, ErrYaExiste
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	libro := &model.Libro{
		ISBN:      req.ISBN,
		Titulo:    req.Titulo,
		Autor:     req.Autor,
		Editorial: req.Editorial,
		Precio:    req.Precio,
		Stock:     req.Stock,
	}
	if err := s.repo.Create(ctx, libro); err != nil {
		return nil, err
	}
	resp := libroToResponse(libro)
	return &resp, nil
}

func (s *libroService) Obtener(ctx context.Context, id string) (*dto.LibroResponse, error) {
	libro, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := libroToResponse(libro)
	return &resp, nil
}

func (s *libroService) Listar(ctx context.Context, filter dto.LibroFilter) ([]dto.LibroResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	libros, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.LibroResponse, 0, len(libros))
	for i := range libros {
		out = append(out, libroToResponse(&libros[i]))
	}
	return out, total, nil
}

func (s *libroService) Actualizar(ctx context.Context, id string, req dto.ActualizarLibroRequest) (*dto.LibroResponse, error) {
	libro, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Titulo != nil {
		libro.Titulo = *req.Titulo
	}
	if req.Autor != nil {
		libro.Autor = *req.Autor
	}
	if req.Editorial != nil {
		libro.Editorial = *req.Editorial
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, ErrMontoInvalido
		}
		libro.Precio = *req.Precio
	}

	if err := s.repo.Update(ctx, libro); err != nil {
		return nil, err
	}
	resp := libroToResponse(libro)
	return &resp, nil
}

func (s *libroService) AjustarStock(ctx context.Context, id string, delta int) (*dto.LibroResponse, error) {
	libro, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AjustarStock(ctx, libro.ID, delta); err != nil {
		return nil, err
	}

	// Re-read: the floor at zero is applied in the database.
	libro, err = s.repo.FindByID(ctx, libro.ID)
	if err != nil {
		return nil, err
	}
	resp := libroToResponse(libro)
	return &resp, nil
}

func (s *libroService) Bajas(ctx context.Context) ([]dto.LibroResponse, error) {
	libros, err := s.repo.ListBajas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LibroResponse, 0, len(libros))
	for i := range libros {
		out = append(out, libroToResponse(&libros[i]))
	}
	return out, nil
}

func (s *libroService) buscar(ctx context.Context, id string) (*model.Libro, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrFormatoInvalido
	}
	libro, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	return libro, nil
}

func libroToResponse(l *model.Libro) dto.LibroResponse {
	return dto.LibroResponse{
		ID:        l.ID.String(),
		ISBN:      l.ISBN,
		Titulo:    l.Titulo,
		Autor:     l.Autor,
		Editorial: l.Editorial,
		Precio:    l.Precio,
		Stock:     l.Stock,
	}
}
