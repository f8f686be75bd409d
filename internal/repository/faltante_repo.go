package repository

import (
	"context"

	"libreria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FaltanteRepository interface {
	Create(ctx context.Context, f *model.Faltante) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Faltante, error)
	List(ctx context.Context) ([]model.Faltante, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type faltanteRepo struct{ db *gorm.DB }

func NewFaltanteRepository(db *gorm.DB) FaltanteRepository { return &faltanteRepo{db: db} }

func (r *faltanteRepo) Create(ctx context.Context, f *model.Faltante) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *faltanteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Faltante, error) {
	var f model.Faltante
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *faltanteRepo) List(ctx context.Context) ([]model.Faltante, error) {
	var faltantes []model.Faltante
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&faltantes).Error
	return faltantes, err
}

func (r *faltanteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Faltante{}, id).Error
}
