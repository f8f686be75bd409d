package repository

import (
	"context"
	"time"

	"libreria/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CajaRepository is the data access contract for shifts, the movement ledger
// and its audit trails. Services depend on this interface, not on GORM,
// enabling unit testing via in-memory fakes.
type CajaRepository interface {
	// CreateTurnoConDesglose persists the shift and its opening denomination
	// rows in one transaction: both or neither.
	CreateTurnoConDesglose(ctx context.Context, t *model.Turno, desglose []model.DesgloseApertura) error
	FindTurnoAbierto(ctx context.Context) (*model.Turno, error)
	FindTurnoByID(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	UpdateTurno(ctx context.Context, t *model.Turno) error
	ListTurnosCerrados(ctx context.Context, fecha *time.Time, periodo string) ([]model.Turno, error)
	ListDesglose(ctx context.Context, turnoID uuid.UUID) ([]model.DesgloseApertura, error)

	CreateMovimiento(ctx context.Context, m *model.Movimiento) error
	FindMovimientoByID(ctx context.Context, id uuid.UUID) (*model.Movimiento, error)
	// ListMovimientos returns the live ledger: non-hidden rows in creation order.
	ListMovimientos(ctx context.Context, turnoID uuid.UUID) ([]model.Movimiento, error)
	// EditarMovimientoConAuditoria writes the audit snapshot and then the
	// mutated row inside one transaction.
	EditarMovimientoConAuditoria(ctx context.Context, m *model.Movimiento, a *model.AuditoriaEdicion) error
	// AnularMovimientoConAuditoria writes the delete snapshot and marks the
	// movement hidden inside one transaction.
	AnularMovimientoConAuditoria(ctx context.Context, m *model.Movimiento, a *model.AuditoriaBaja) error

	ListAuditoriasEdicion(ctx context.Context, turnoID uuid.UUID) ([]model.AuditoriaEdicion, error)
	ListAuditoriasBaja(ctx context.Context, turnoID uuid.UUID) ([]model.AuditoriaBaja, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) CreateTurnoConDesglose(ctx context.Context, t *model.Turno, desglose []model.DesgloseApertura) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		for i := range desglose {
			desglose[i].TurnoID = t.ID
		}
		if len(desglose) > 0 {
			if err := tx.Create(&desglose).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *cajaRepo) FindTurnoAbierto(ctx context.Context) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).Where("estado = 'abierto'").First(&t).Error
	return &t, err
}

func (r *cajaRepo) FindTurnoByID(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	var t model.Turno
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *cajaRepo) UpdateTurno(ctx context.Context, t *model.Turno) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *cajaRepo) ListTurnosCerrados(ctx context.Context, fecha *time.Time, periodo string) ([]model.Turno, error) {
	var turnos []model.Turno
	q := r.db.WithContext(ctx).Where("estado = 'cerrado'")
	if fecha != nil {
		q = q.Where("fecha = ?", fecha.Format("2006-01-02"))
	}
	if periodo != "" {
		q = q.Where("periodo = ?", periodo)
	}
	err := q.Order("fecha DESC, opened_at DESC").Find(&turnos).Error
	return turnos, err
}

func (r *cajaRepo) ListDesglose(ctx context.Context, turnoID uuid.UUID) ([]model.DesgloseApertura, error) {
	var rows []model.DesgloseApertura
	err := r.db.WithContext(ctx).Where("turno_id = ?", turnoID).Find(&rows).Error
	return rows, err
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, m *model.Movimiento) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) FindMovimientoByID(ctx context.Context, id uuid.UUID) (*model.Movimiento, error) {
	var m model.Movimiento
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, turnoID uuid.UUID) ([]model.Movimiento, error) {
	var movs []model.Movimiento
	err := r.db.WithContext(ctx).
		Where("turno_id = ? AND oculto = false", turnoID).
		Order("created_at ASC").Find(&movs).Error
	return movs, err
}

func (r *cajaRepo) EditarMovimientoConAuditoria(ctx context.Context, m *model.Movimiento, a *model.AuditoriaEdicion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return tx.Save(m).Error
	})
}

func (r *cajaRepo) AnularMovimientoConAuditoria(ctx context.Context, m *model.Movimiento, a *model.AuditoriaBaja) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return tx.Model(&model.Movimiento{}).Where("id = ?", m.ID).Update("oculto", true).Error
	})
}

func (r *cajaRepo) ListAuditoriasEdicion(ctx context.Context, turnoID uuid.UUID) ([]model.AuditoriaEdicion, error) {
	var rows []model.AuditoriaEdicion
	sub := r.db.Model(&model.Movimiento{}).Select("id").Where("turno_id = ?", turnoID)
	err := r.db.WithContext(ctx).
		Where("movimiento_id IN (?)", sub).
		Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *cajaRepo) ListAuditoriasBaja(ctx context.Context, turnoID uuid.UUID) ([]model.AuditoriaBaja, error) {
	var rows []model.AuditoriaBaja
	sub := r.db.Model(&model.Movimiento{}).Select("id").Where("turno_id = ?", turnoID)
	err := r.db.WithContext(ctx).
		Where("movimiento_id IN (?)", sub).
		Order("created_at ASC").Find(&rows).Error
	return rows, err
}
