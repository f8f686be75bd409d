package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido tracks one special customer order from request to hand-off.
// Estado: "pendiente" → "encargado" → "recibido" → "entregado", with
// "cancelado" reachable from any non-terminal state.
type Pedido struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Cliente  string    `gorm:"not null"`
	Telefono string
	Titulo   string `gorm:"not null"`
	ISBN     *string
	// Sena is the deposit left by the customer when placing the order.
	Sena      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado    string          `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Notas     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
