package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CredencialRequest carries an identity plus the secret proving it.
// Identidad is a staff letter (e.g. "F") or the literal "admin".
type CredencialRequest struct {
	Identidad string `json:"identidad" validate:"required,min=1,max=5"`
	Secreto   string `json:"secreto"   validate:"required"`
}

type DesgloseItem struct {
	Etiqueta string          `json:"etiqueta" validate:"required"`
	Monto    decimal.Decimal `json:"monto"    validate:"min=0"`
}

type AbrirTurnoRequest struct {
	Admin    CredencialRequest `json:"admin"    validate:"required"`
	Fecha    string            `json:"fecha"    validate:"required,datetime=2006-01-02"`
	Periodo  string            `json:"periodo"  validate:"required,oneof=manana tarde"`
	Desglose []DesgloseItem    `json:"desglose" validate:"required,min=1,dive"`
	Nota     string            `json:"nota"`
}

type CerrarTurnoRequest struct {
	TurnoID         string            `json:"turno_id"         validate:"required,uuid"`
	Admin           CredencialRequest `json:"admin"            validate:"required"`
	EfectivoContado decimal.Decimal   `json:"efectivo_contado" validate:"min=0"`
	Nota            string            `json:"nota"`
}

type RegistrarMovimientoRequest struct {
	TurnoID     string            `json:"turno_id"    validate:"required,uuid"`
	Tipo        string            `json:"tipo"        validate:"required,oneof=venta egreso"`
	Metodo      string            `json:"metodo"      validate:"required,oneof=efectivo transferencia billetera debito credito otro"`
	Monto       decimal.Decimal   `json:"monto"       validate:"gt=0"`
	Descripcion string            `json:"descripcion" validate:"required,min=1"`
	Entregado   *decimal.Decimal  `json:"entregado"`
	Atribucion  CredencialRequest `json:"atribucion"  validate:"required"`
}

type EditarMovimientoRequest struct {
	Credencial  CredencialRequest `json:"credencial" validate:"required"`
	Motivo      string            `json:"motivo"     validate:"required,min=3"`
	Monto       *decimal.Decimal  `json:"monto"`
	Metodo      *string           `json:"metodo"      validate:"omitempty,oneof=efectivo transferencia billetera debito credito otro"`
	Descripcion *string           `json:"descripcion" validate:"omitempty,min=1"`
}

type AnularMovimientoRequest struct {
	Credencial CredencialRequest `json:"credencial" validate:"required"`
	Motivo     string            `json:"motivo"     validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID          string           `json:"id"`
	TurnoID     string           `json:"turno_id"`
	Tipo        string           `json:"tipo"`
	Metodo      string           `json:"metodo"`
	Monto       decimal.Decimal  `json:"monto"`
	Descripcion string           `json:"descripcion"`
	Entregado   *decimal.Decimal `json:"entregado,omitempty"`
	Vuelto      *decimal.Decimal `json:"vuelto,omitempty"`
	AtribuidoA  string           `json:"atribuido_a"`
	CreatedAt   string           `json:"created_at"`
}

type TotalesResponse struct {
	PorMetodo     map[string]decimal.Decimal `json:"por_metodo"`
	TotalEgresos  decimal.Decimal            `json:"total_egresos"`
	SaldoEfectivo decimal.Decimal            `json:"saldo_efectivo"`
	SaldoTotal    decimal.Decimal            `json:"saldo_total"`
}

type TurnoResponse struct {
	ID           string          `json:"id"`
	Fecha        string          `json:"fecha"`
	Periodo      string          `json:"periodo"`
	Estado       string          `json:"estado"`
	MontoInicial decimal.Decimal `json:"monto_inicial"`
	NotaApertura string          `json:"nota_apertura"`
	Desglose     []DesgloseItem  `json:"desglose"`
	OpenedAt     string          `json:"opened_at"`
}

type CierreResponse struct {
	TurnoID         string          `json:"turno_id"`
	Totales         TotalesResponse `json:"totales"`
	EfectivoContado decimal.Decimal `json:"efectivo_contado"`
	// Diferencia = efectivo contado − saldo efectivo esperado.
	Diferencia decimal.Decimal `json:"diferencia"`
	Estado     string          `json:"estado"`
	ClosedAt   string          `json:"closed_at"`
}

// EstadoCajaResponse is the live view of the open shift for the Caja screen.
type EstadoCajaResponse struct {
	Turno       TurnoResponse        `json:"turno"`
	Movimientos []MovimientoResponse `json:"movimientos"`
	Totales     TotalesResponse      `json:"totales"`
}
