package dto

import "github.com/shopspring/decimal"

// FiltroHistorial narrows the closed-shift listing; both fields optional.
type FiltroHistorial struct {
	Fecha   string // "2006-01-02"
	Periodo string // "manana" | "tarde"
}

type TurnoResumenResponse struct {
	ID              string           `json:"id"`
	Fecha           string           `json:"fecha"`
	Periodo         string           `json:"periodo"`
	MontoInicial    decimal.Decimal  `json:"monto_inicial"`
	EfectivoContado *decimal.Decimal `json:"efectivo_contado"`
	OpenedAt        string           `json:"opened_at"`
	ClosedAt        *string          `json:"closed_at"`
}

type AuditoriaEdicionResponse struct {
	MovimientoID        string          `json:"movimiento_id"`
	Actor               string          `json:"actor"`
	Motivo              string          `json:"motivo"`
	MontoAnterior       decimal.Decimal `json:"monto_anterior"`
	MetodoAnterior      string          `json:"metodo_anterior"`
	DescripcionAnterior string          `json:"descripcion_anterior"`
	At                  string          `json:"at"`
}

type AuditoriaBajaResponse struct {
	MovimientoID        string          `json:"movimiento_id"`
	Actor               string          `json:"actor"`
	Motivo              string          `json:"motivo"`
	TipoAnterior        string          `json:"tipo_anterior"`
	MontoAnterior       decimal.Decimal `json:"monto_anterior"`
	MetodoAnterior      string          `json:"metodo_anterior"`
	DescripcionAnterior string          `json:"descripcion_anterior"`
	At                  string          `json:"at"`
}

type DetalleTurnoResponse struct {
	Turno           TurnoResponse              `json:"turno"`
	EfectivoContado *decimal.Decimal           `json:"efectivo_contado"`
	NotaCierre      *string                    `json:"nota_cierre"`
	ClosedAt        *string                    `json:"closed_at"`
	Movimientos     []MovimientoResponse       `json:"movimientos"`
	Ediciones       []AuditoriaEdicionResponse `json:"auditoria_ediciones"`
	Bajas           []AuditoriaBajaResponse    `json:"auditoria_bajas"`
	Totales         TotalesResponse            `json:"totales"`
}
