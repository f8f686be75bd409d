package service

import (
	"context"
	"errors"
	"time"

	"libreria/internal/dto"
	"libreria/internal/model"
	"libreria/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistorialService is the read-only browser over closed shifts: summaries,
// and the full detail of one shift including its audit trails.
type HistorialService interface {
	Listar(ctx context.Context, filtro dto.FiltroHistorial) ([]dto.TurnoResumenResponse, error)
	Detalle(ctx context.Context, turnoID string) (*dto.DetalleTurnoResponse, error)
}

type historialService struct {
	repo repository.CajaRepository
}

func NewHistorialService(repo repository.CajaRepository) HistorialService {
	return &historialService{repo: repo}
}

func (s *historialService) Listar(ctx context.Context, filtro dto.FiltroHistorial) ([]dto.TurnoResumenResponse, error) {
	var fecha *time.Time
	if filtro.Fecha != "" {
		parsed, err := time.Parse("2006-01-02", filtro.Fecha)
		if err != nil {
			return nil, ErrFormatoInvalido
		}
		fecha = &parsed
	}
	if filtro.Periodo != "" && filtro.Periodo != "manana" && filtro.Periodo != "tarde" {
		return nil, ErrFormatoInvalido
	}

	turnos, err := s.repo.ListTurnosCerrados(ctx, fecha, filtro.Periodo)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TurnoResumenResponse, 0, len(turnos))
	for i := range turnos {
		out = append(out, turnoToResumen(&turnos[i]))
	}
	return out, nil
}

// Detalle reconstructs one closed shift: frozen ledger, both audit trails and
// the recomputed totals. Open shifts are not part of history; the live view
// serves those.
func (s *historialService) Detalle(ctx context.Context, turnoID string) (*dto.DetalleTurnoResponse, error) {
	id, err := uuid.Parse(turnoID)
	if err != nil {
		return nil, ErrFormatoInvalido
	}
	turno, err := s.repo.FindTurnoByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if turno.Estado != "cerrado" {
		return nil, ErrNoEncontrado
	}

	desglose, err := s.repo.ListDesglose(ctx, turno.ID)
	if err != nil {
		return nil, err
	}
	movimientos, err := s.repo.ListMovimientos(ctx, turno.ID)
	if err != nil {
		return nil, err
	}
	ediciones, err := s.repo.ListAuditoriasEdicion(ctx, turno.ID)
	if err != nil {
		return nil, err
	}
	bajas, err := s.repo.ListAuditoriasBaja(ctx, turno.ID)
	if err != nil {
		return nil, err
	}

	var closedAt *string
	if turno.ClosedAt != nil {
		v := turno.ClosedAt.Format(time.RFC3339)
		closedAt = &v
	}

	return &dto.DetalleTurnoResponse{
		Turno:           turnoToResponse(turno, desglose),
		EfectivoContado: turno.EfectivoContado,
		NotaCierre:      turno.NotaCierre,
		ClosedAt:        closedAt,
		Movimientos:     movimientosToResponse(movimientos),
		Ediciones:       edicionesToResponse(ediciones),
		Bajas:           bajasToResponse(bajas),
		Totales:         CalcularTotales(turno.MontoInicial, movimientos),
	}, nil
}

func turnoToResumen(t *model.Turno) dto.TurnoResumenResponse {
	var closedAt *string
	if t.ClosedAt != nil {
		v := t.ClosedAt.Format(time.RFC3339)
		closedAt = &v
	}
	return dto.TurnoResumenResponse{
		ID:              t.ID.String(),
		Fecha:           t.Fecha.Format("2006-01-02"),
		Periodo:         t.Periodo,
		MontoInicial:    t.MontoInicial,
		EfectivoContado: t.EfectivoContado,
		OpenedAt:        t.OpenedAt.Format(time.RFC3339),
		ClosedAt:        closedAt,
	}
}

func edicionesToResponse(rows []model.AuditoriaEdicion) []dto.AuditoriaEdicionResponse {
	out := make([]dto.AuditoriaEdicionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AuditoriaEdicionResponse{
			MovimientoID:        r.MovimientoID.String(),
			Actor:               r.Actor,
			Motivo:              r.Motivo,
			MontoAnterior:       r.MontoAnterior,
			MetodoAnterior:      r.MetodoAnterior,
			DescripcionAnterior: r.DescripcionAnterior,
			At:                  r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

func bajasToResponse(rows []model.AuditoriaBaja) []dto.AuditoriaBajaResponse {
	out := make([]dto.AuditoriaBajaResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AuditoriaBajaResponse{
			MovimientoID:        r.MovimientoID.String(),
			Actor:               r.Actor,
			Motivo:              r.Motivo,
			TipoAnterior:        r.TipoAnterior,
			MontoAnterior:       r.MontoAnterior,
			MetodoAnterior:      r.MetodoAnterior,
			DescripcionAnterior: r.DescripcionAnterior,
			At:                  r.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
