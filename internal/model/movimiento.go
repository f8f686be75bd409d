package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movimiento is one sale or outflow recorded against an open Turno.
// Tipo: "venta" | "egreso"
// Metodo: "efectivo" | "transferencia" | "billetera" | "debito" | "credito" | "otro"
// Edits and deletions are credential-gated to the original author and always
// leave an audit row behind; Oculto=true hides the row from the live ledger
// and from totals without removing it from storage.
type Movimiento struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo        string          `gorm:"type:varchar(10);not null"`
	Metodo      string          `gorm:"type:varchar(20);not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion string          `gorm:"not null"`
	// Entregado / Vuelto only apply to ventas paid in cash.
	Entregado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Vuelto    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// AtribuidoA is the staff letter (or "admin") credited with the movement.
	// Re-proving this identity's credential is required to edit or delete.
	AtribuidoA string `gorm:"type:varchar(10);not null"`
	Oculto     bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AuditoriaEdicion snapshots a movement's prior values before an in-place edit.
// Append-only.
type AuditoriaEdicion struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MovimientoID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Actor               string    `gorm:"type:varchar(10);not null"`
	Motivo              string
	MontoAnterior       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoAnterior      string          `gorm:"type:varchar(20);not null"`
	DescripcionAnterior string
	CreatedAt           time.Time
}

func (AuditoriaEdicion) TableName() string { return "auditoria_ediciones" }

// AuditoriaBaja snapshots a movement at the moment of its soft delete.
// Append-only; the hidden movement stays in movimientos.
type AuditoriaBaja struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MovimientoID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Actor               string    `gorm:"type:varchar(10);not null"`
	Motivo              string
	TipoAnterior        string          `gorm:"type:varchar(10);not null"`
	MontoAnterior       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoAnterior      string          `gorm:"type:varchar(20);not null"`
	DescripcionAnterior string
	CreatedAt           time.Time
}

func (AuditoriaBaja) TableName() string { return "auditoria_bajas" }
