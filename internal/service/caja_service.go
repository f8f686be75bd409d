package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"libreria/internal/dto"
	"libreria/internal/infra"
	"libreria/internal/model"
	"libreria/internal/repository"
	"libreria/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CajaService is the reconciliation core: shift lifecycle, the attributed
// movement ledger and its credential-gated mutations.
type CajaService interface {
	// Abrir opens the day's shift. Admin-gated; fails with ErrYaAbierto while
	// another shift is open.
	Abrir(ctx context.Context, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error)
	// Cerrar closes the shift, freezing the ledger and recording the counted
	// cash against the expected balance. Admin-gated.
	Cerrar(ctx context.Context, req dto.CerrarTurnoRequest) (*dto.CierreResponse, error)
	// EstadoActual returns the open shift with its live ledger and totals.
	EstadoActual(ctx context.Context) (*dto.EstadoCajaResponse, error)

	RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	EditarMovimiento(ctx context.Context, movimientoID string, req dto.EditarMovimientoRequest) (*dto.MovimientoResponse, error)
	AnularMovimiento(ctx context.Context, movimientoID string, req dto.AnularMovimientoRequest) error
}

type cajaService struct {
	repo        repository.CajaRepository
	verificador Verificador
	dispatcher  *worker.Dispatcher // nil when async jobs are disabled (tests)
}

func NewCajaService(repo repository.CajaRepository, verificador Verificador, dispatcher *worker.Dispatcher) CajaService {
	return &cajaService{repo: repo, verificador: verificador, dispatcher: dispatcher}
}

// ── Turnos ────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, req dto.AbrirTurnoRequest) (*dto.TurnoResponse, error) {
	if err := s.verificador.VerificarAdmin(ctx, req.Admin.Secreto); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindTurnoAbierto(ctx); err == nil {
		return nil, ErrYaAbierto
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, ErrFormatoInvalido
	}

	montoInicial := decimal.Zero
	desglose := make([]model.DesgloseApertura, 0, len(req.Desglose))
	for _, item := range req.Desglose {
		if item.Monto.IsNegative() {
			return nil, ErrMontoInvalido
		}
		montoInicial = montoInicial.Add(item.Monto)
		desglose = append(desglose, model.DesgloseApertura{Etiqueta: item.Etiqueta, Monto: item.Monto})
	}

	turno := &model.Turno{
		Fecha:        fecha,
		Periodo:      req.Periodo,
		MontoInicial: montoInicial,
		NotaApertura: req.Nota,
		Estado:       "abierto",
		OpenedAt:     time.Now(),
	}
	if err := s.repo.CreateTurnoConDesglose(ctx, turno, desglose); err != nil {
		// Partial unique index on estado='abierto' backs the single-open-shift
		// rule against concurrent opens.
		if strings.Contains(err.Error(), "idx_turnos_unico_abierto") {
			return nil, ErrYaAbierto
		}
		return nil, err
	}

	log.Info().Str("turno_id", turno.ID.String()).Str("periodo", turno.Periodo).Msg("turno abierto")
	resp := turnoToResponse(turno, desglose)
	return &resp, nil
}

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarTurnoRequest) (*dto.CierreResponse, error) {
	if err := s.verificador.VerificarAdmin(ctx, req.Admin.Secreto); err != nil {
		return nil, err
	}

	turnoID, err := uuid.Parse(req.TurnoID)
	if err != nil {
		return nil, ErrFormatoInvalido
	}
	turno, err := s.repo.FindTurnoByID(ctx, turnoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if turno.Estado != "abierto" {
		return nil, ErrTurnoNoAbierto
	}

	movimientos, err := s.repo.ListMovimientos(ctx, turno.ID)
	if err != nil {
		return nil, err
	}
	totales := CalcularTotales(turno.MontoInicial, movimientos)
	diferencia := req.EfectivoContado.Sub(totales.SaldoEfectivo)

	now := time.Now()
	contado := req.EfectivoContado
	turno.EfectivoContado = &contado
	if req.Nota != "" {
		turno.NotaCierre = &req.Nota
	}
	turno.Estado = "cerrado"
	turno.ClosedAt = &now
	if err := s.repo.UpdateTurno(ctx, turno); err != nil {
		return nil, err
	}

	log.Info().
		Str("turno_id", turno.ID.String()).
		Str("diferencia", diferencia.StringFixed(2)).
		Msg("turno cerrado")

	s.encolarReporteCierre(ctx, turno, totales, contado, diferencia, len(movimientos))

	return &dto.CierreResponse{
		TurnoID:         turno.ID.String(),
		Totales:         totales,
		EfectivoContado: contado,
		Diferencia:      diferencia,
		Estado:          turno.Estado,
		ClosedAt:        now.Format(time.RFC3339),
	}, nil
}

// encolarReporteCierre queues the closing report. Best effort: the close
// already committed, so an enqueue failure is logged, never surfaced.
func (s *cajaService) encolarReporteCierre(ctx context.Context, turno *model.Turno, totales dto.TotalesResponse, contado, diferencia decimal.Decimal, cantMovs int) {
	if s.dispatcher == nil {
		return
	}
	rep := infra.ReporteCierre{
		TurnoID:         turno.ID.String(),
		Fecha:           turno.Fecha.Format("2006-01-02"),
		Periodo:         turno.Periodo,
		MontoInicial:    turno.MontoInicial,
		PorMetodo:       totales.PorMetodo,
		TotalEgresos:    totales.TotalEgresos,
		SaldoEfectivo:   totales.SaldoEfectivo,
		SaldoTotal:      totales.SaldoTotal,
		EfectivoContado: contado,
		Diferencia:      diferencia,
		CantMovimientos: cantMovs,
	}
	if err := s.dispatcher.EnqueueCierre(ctx, rep); err != nil {
		log.Error().Err(err).Str("turno_id", rep.TurnoID).Msg("no se pudo encolar el reporte de cierre")
	}
}

func (s *cajaService) EstadoActual(ctx context.Context) (*dto.EstadoCajaResponse, error) {
	turno, err := s.repo.FindTurnoAbierto(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSinTurnoAbierto
		}
		return nil, err
	}

	desglose, err := s.repo.ListDesglose(ctx, turno.ID)
	if err != nil {
		return nil, err
	}
	movimientos, err := s.repo.ListMovimientos(ctx, turno.ID)
	if err != nil {
		return nil, err
	}

	return &dto.EstadoCajaResponse{
		Turno:       turnoToResponse(turno, desglose),
		Movimientos: movimientosToResponse(movimientos),
		Totales:     CalcularTotales(turno.MontoInicial, movimientos),
	}, nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

func (s *cajaService) RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	if err := s.verificador.Verificar(ctx, req.Atribucion.Identidad, req.Atribucion.Secreto); err != nil {
		return nil, err
	}

	turnoID, err := uuid.Parse(req.TurnoID)
	if err != nil {
		return nil, ErrFormatoInvalido
	}
	turno, err := s.repo.FindTurnoByID(ctx, turnoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if turno.Estado != "abierto" {
		return nil, ErrSinTurnoAbierto
	}

	if !req.Monto.IsPositive() {
		return nil, ErrMontoInvalido
	}

	mov := &model.Movimiento{
		TurnoID:     turno.ID,
		Tipo:        req.Tipo,
		Metodo:      req.Metodo,
		Monto:       req.Monto,
		Descripcion: req.Descripcion,
		AtribuidoA:  req.Atribucion.Identidad,
	}

	// Change due only makes sense for cash sales.
	if req.Tipo == "venta" && req.Metodo == "efectivo" && req.Entregado != nil {
		entregado := *req.Entregado
		vuelto := entregado.Sub(req.Monto)
		if vuelto.IsNegative() {
			vuelto = decimal.Zero
		}
		mov.Entregado = &entregado
		mov.Vuelto = &vuelto
	}

	if err := s.repo.CreateMovimiento(ctx, mov); err != nil {
		return nil, err
	}

	resp := movimientoToResponse(mov)
	return &resp, nil
}

// buscarMovimientoEditable loads a movement and checks that it is visible,
// belongs to an open shift, and that the caller proved the original author's
// credential.
func (s *cajaService) buscarMovimientoEditable(ctx context.Context, movimientoID string, cred dto.CredencialRequest) (*model.Movimiento, error) {
	id, err := uuid.Parse(movimientoID)
	if err != nil {
		return nil, ErrFormatoInvalido
	}
	mov, err := s.repo.FindMovimientoByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoEncontrado
		}
		return nil, err
	}
	if mov.Oculto {
		return nil, ErrNoEncontrado
	}

	turno, err := s.repo.FindTurnoByID(ctx, mov.TurnoID)
	if err != nil {
		return nil, err
	}
	if turno.Estado != "abierto" {
		return nil, ErrTurnoNoAbierto
	}

	if err := s.verificador.Verificar(ctx, cred.Identidad, cred.Secreto); err != nil {
		return nil, err
	}
	// A valid credential is not enough: it has to be the author's.
	if cred.Identidad != mov.AtribuidoA {
		return nil, ErrNoEsAutorOriginal
	}
	return mov, nil
}

func (s *cajaService) EditarMovimiento(ctx context.Context, movimientoID string, req dto.EditarMovimientoRequest) (*dto.MovimientoResponse, error) {
	mov, err := s.buscarMovimientoEditable(ctx, movimientoID, req.Credencial)
	if err != nil {
		return nil, err
	}

	// Snapshot prior values before mutating anything.
	audit := &model.AuditoriaEdicion{
		MovimientoID:        mov.ID,
		Actor:               req.Credencial.Identidad,
		Motivo:              req.Motivo,
		MontoAnterior:       mov.Monto,
		MetodoAnterior:      mov.Metodo,
		DescripcionAnterior: mov.Descripcion,
	}

	if req.Monto != nil {
		if !req.Monto.IsPositive() {
			return nil, ErrMontoInvalido
		}
		mov.Monto = *req.Monto
	}
	if req.Metodo != nil {
		mov.Metodo = *req.Metodo
	}
	if req.Descripcion != nil {
		mov.Descripcion = *req.Descripcion
	}

	// Keep the change-due figures consistent with the edited values.
	if mov.Tipo == "venta" && mov.Metodo == "efectivo" && mov.Entregado != nil {
		vuelto := mov.Entregado.Sub(mov.Monto)
		if vuelto.IsNegative() {
			vuelto = decimal.Zero
		}
		mov.Vuelto = &vuelto
	} else {
		mov.Entregado = nil
		mov.Vuelto = nil
	}

	if err := s.repo.EditarMovimientoConAuditoria(ctx, mov, audit); err != nil {
		return nil, err
	}

	log.Info().
		Str("movimiento_id", mov.ID.String()).
		Str("actor", audit.Actor).
		Msg("movimiento editado")

	resp := movimientoToResponse(mov)
	return &resp, nil
}

func (s *cajaService) AnularMovimiento(ctx context.Context, movimientoID string, req dto.AnularMovimientoRequest) error {
	mov, err := s.buscarMovimientoEditable(ctx, movimientoID, req.Credencial)
	if err != nil {
		return err
	}

	audit := &model.AuditoriaBaja{
		MovimientoID:        mov.ID,
		Actor:               req.Credencial.Identidad,
		Motivo:              req.Motivo,
		TipoAnterior:        mov.Tipo,
		MontoAnterior:       mov.Monto,
		MetodoAnterior:      mov.Metodo,
		DescripcionAnterior: mov.Descripcion,
	}

	if err := s.repo.AnularMovimientoConAuditoria(ctx, mov, audit); err != nil {
		return err
	}

	log.Info().
		Str("movimiento_id", mov.ID.String()).
		Str("actor", audit.Actor).
		Msg("movimiento anulado")
	return nil
}

// ── Mapeo modelo → DTO ────────────────────────────────────────────────────────

func turnoToResponse(t *model.Turno, desglose []model.DesgloseApertura) dto.TurnoResponse {
	items := make([]dto.DesgloseItem, 0, len(desglose))
	for _, d := range desglose {
		items = append(items, dto.DesgloseItem{Etiqueta: d.Etiqueta, Monto: d.Monto})
	}
	return dto.TurnoResponse{
		ID:           t.ID.String(),
		Fecha:        t.Fecha.Format("2006-01-02"),
		Periodo:      t.Periodo,
		Estado:       t.Estado,
		MontoInicial: t.MontoInicial,
		NotaApertura: t.NotaApertura,
		Desglose:     items,
		OpenedAt:     t.OpenedAt.Format(time.RFC3339),
	}
}

func movimientoToResponse(m *model.Movimiento) dto.MovimientoResponse {
	return dto.MovimientoResponse{
		ID:          m.ID.String(),
		TurnoID:     m.TurnoID.String(),
		Tipo:        m.Tipo,
		Metodo:      m.Metodo,
		Monto:       m.Monto,
		Descripcion: m.Descripcion,
		Entregado:   m.Entregado,
		Vuelto:      m.Vuelto,
		AtribuidoA:  m.AtribuidoA,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

func movimientosToResponse(movs []model.Movimiento) []dto.MovimientoResponse {
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for i := range movs {
		out = append(out, movimientoToResponse(&movs[i]))
	}
	return out
}
