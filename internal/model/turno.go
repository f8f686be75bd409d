package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Turno represents one register shift, the unit of reconciliation.
// Estado: "abierto" | "cerrado"
type Turno struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha   time.Time `gorm:"type:date;not null;index"`
	Periodo string    `gorm:"type:varchar(10);not null"` // "manana" | "tarde"
	// MontoInicial is the sum of the opening denomination breakdown rows.
	MontoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// EfectivoContado is the cash physically counted at close; nil while open.
	EfectivoContado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	NotaApertura    string
	NotaCierre      *string
	Estado          string `gorm:"type:varchar(20);not null;default:'abierto'"`
	OpenedAt        time.Time
	ClosedAt        *time.Time

	Desglose    []DesgloseApertura `gorm:"foreignKey:TurnoID"`
	Movimientos []Movimiento       `gorm:"foreignKey:TurnoID"`
}

// DesgloseApertura is one cash-denomination bucket counted at shift opening.
// Rows are created atomically with the Turno and never mutated afterwards.
type DesgloseApertura struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TurnoID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Etiqueta string          `gorm:"not null"` // "billetes_chicos" | "billetes_medianos" | "billetes_grandes" | "otros"
	Monto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
