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

// ── In-memory LibroRepository ────────────────────────────────────────────────

type fakeLibroRepo struct {
	libros map[uuid.UUID]*model.Libro
}

func newFakeLibroRepo() *fakeLibroRepo {
	return &fakeLibroRepo{libros: make(map[uuid.UUID]*model.Libro)}
}

func (r *fakeLibroRepo) Create(_ context.Context, l *model.Libro) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	copia := *l
	r.libros[l.ID] = &copia
	return nil
}

func (r *fakeLibroRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Libro, error) {
	l, ok := r.libros[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *l
	return &copia, nil
}

func (r *fakeLibroRepo) FindByISBN(_ context.Context, isbn string) (*model.Libro, error) {
	for _, l := range r.libros {
		if l.ISBN == isbn {
			copia := *l
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeLibroRepo) List(_ context.Context, _ dto.LibroFilter) ([]model.Libro, int64, error) {
	var out []model.Libro
	for _, l := range r.libros {
		out = append(out, *l)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLibroRepo) Update(_ context.Context, l *model.Libro) error {
	copia := *l
	r.libros[l.ID] = &copia
	return nil
}

func (r *fakeLibroRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	l, ok := r.libros[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.Stock += delta
	if l.Stock < 0 {
		l.Stock = 0
	}
	return nil
}

func (r *fakeLibroRepo) ListBajas(_ context.Context) ([]model.Libro, error) {
	var out []model.Libro
	for _, l := range r.libros {
		if l.Stock == 0 {
			out = append(out, *l)
		}
	}
	return out, nil
}

var _ repository.LibroRepository = (*fakeLibroRepo)(nil)

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCrearLibro(t *testing.T) {
	svc := service.NewLibroService(newFakeLibroRepo())

	resp, err := svc.Crear(context.Background(), dto.CrearLibroRequest{
		ISBN: "9789500401517", Titulo: "Rayuela", Autor: "Cortazar",
		Precio: decimal.NewFromInt(15000), Stock: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rayuela", resp.Titulo)
	assert.Equal(t, 3, resp.Stock)

	_, err = svc.Crear(context.Background(), dto.CrearLibroRequest{
		ISBN: "9789500401517", Titulo: "Rayuela otra vez",
	})
	assert.ErrorIs(t, err, service.ErrYaExiste)
}

func TestAjustarStockPisoEnCero(t *testing.T) {
	svc := service.NewLibroService(newFakeLibroRepo())

	libro, err := svc.Crear(context.Background(), dto.CrearLibroRequest{
		ISBN: "9789871234561", Titulo: "El Aleph", Stock: 2,
	})
	require.NoError(t, err)

	// Restar mas de lo que hay no deja stock negativo.
	resp, err := svc.AjustarStock(context.Background(), libro.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stock)

	resp, err = svc.AjustarStock(context.Background(), libro.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Stock)
}

func TestBajas(t *testing.T) {
	svc := service.NewLibroService(newFakeLibroRepo())

	agotado, err := svc.Crear(context.Background(), dto.CrearLibroRequest{
		ISBN: "9789871234562", Titulo: "Sin stock", Stock: 0,
	})
	require.NoError(t, err)
	_, err = svc.Crear(context.Background(), dto.CrearLibroRequest{
		ISBN: "9789871234563", Titulo: "Con stock", Stock: 5,
	})
	require.NoError(t, err)

	bajas, err := svc.Bajas(context.Background())
	require.NoError(t, err)
	require.Len(t, bajas, 1)
	assert.Equal(t, agotado.ID, bajas[0].ID)
}

func TestActualizarLibro(t *testing.T) {
	svc := service.NewLibroService(newFakeLibroRepo())

	libro, err := svc.Crear(context.Background(), dto.CrearLibroRequest{
		ISBN: "9789871234564", Titulo: "Ficciones", Precio: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	nuevoPrecio := decimal.NewFromInt(12000)
	resp, err := svc.Actualizar(context.Background(), libro.ID, dto.ActualizarLibroRequest{
		Precio: &nuevoPrecio,
	})
	require.NoError(t, err)
	assert.Equal(t, "12000", resp.Precio.String())
	assert.Equal(t, "Ficciones", resp.Titulo)

	_, err = svc.Obtener(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}
