package repository

import (
	"context"

	"libreria/internal/dto"
	"libreria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LibroRepository interface {
	Create(ctx context.Context, l *model.Libro) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Libro, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Libro, error)
	List(ctx context.Context, filter dto.LibroFilter) ([]model.Libro, int64, error)
	Update(ctx context.Context, l *model.Libro) error
	// AjustarStock applies delta with a floor at zero, in a single UPDATE so
	// concurrent decrements cannot drive stock negative.
	AjustarStock(ctx context.Context, id uuid.UUID, delta int) error
	// ListBajas returns written-off titles (stock at zero).
	ListBajas(ctx context.Context) ([]model.Libro, error)
}

type libroRepo struct{ db *gorm.DB }

func NewLibroRepository(db *gorm.DB) LibroRepository { return &libroRepo{db: db} }

func (r *libroRepo) Create(ctx context.Context, l *model.Libro) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *libroRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Libro, error) {
	var l model.Libro
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *libroRepo) FindByISBN(ctx context.Context, isbn string) (*model.Libro, error) {
	var l model.Libro
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&l).Error
	return &l, err
}

func (r *libroRepo) List(ctx context.Context, filter dto.LibroFilter) ([]model.Libro, int64, error) {
	var libros []model.Libro
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Libro{})
	if filter.ISBN != "" {
		q = q.Where("isbn = ?", filter.ISBN)
	}
	if filter.Titulo != "" {
		q = q.Where("titulo ILIKE ?", "%"+filter.Titulo+"%")
	}
	if filter.Autor != "" {
		q = q.Where("autor ILIKE ?", "%"+filter.Autor+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("titulo ASC").Limit(filter.Limit).Offset(offset).Find(&libros).Error
	return libros, total, err
}

func (r *libroRepo) Update(ctx context.Context, l *model.Libro) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *libroRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Libro{}).Where("id = ?", id).
		Update("stock", gorm.Expr("GREATEST(stock + ?, 0)", delta)).Error
}

func (r *libroRepo) ListBajas(ctx context.Context) ([]model.Libro, error) {
	var libros []model.Libro
	err := r.db.WithContext(ctx).Where("stock = 0").Order("titulo ASC").Find(&libros).Error
	return libros, err
}
