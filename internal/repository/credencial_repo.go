package repository

import (
	"context"

	"libreria/internal/model"

	"gorm.io/gorm"
)

type CredencialRepository interface {
	Create(ctx context.Context, c *model.Credencial) error
	FindByIdentidad(ctx context.Context, identidad string) (*model.Credencial, error)
	UpdateSecreto(ctx context.Context, identidad, hash string) error
	List(ctx context.Context) ([]model.Credencial, error)
}

type credencialRepo struct{ db *gorm.DB }

func NewCredencialRepository(db *gorm.DB) CredencialRepository { return &credencialRepo{db: db} }

func (r *credencialRepo) Create(ctx context.Context, c *model.Credencial) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *credencialRepo) FindByIdentidad(ctx context.Context, identidad string) (*model.Credencial, error) {
	var c model.Credencial
	err := r.db.WithContext(ctx).Where("identidad = ?", identidad).First(&c).Error
	return &c, err
}

func (r *credencialRepo) UpdateSecreto(ctx context.Context, identidad, hash string) error {
	return r.db.WithContext(ctx).Model(&model.Credencial{}).
		Where("identidad = ?", identidad).Update("secreto_hash", hash).Error
}

func (r *credencialRepo) List(ctx context.Context) ([]model.Credencial, error) {
	var creds []model.Credencial
	err := r.db.WithContext(ctx).Order("identidad ASC").Find(&creds).Error
	return creds, err
}
