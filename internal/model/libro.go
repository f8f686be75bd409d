package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Libro is one inventory title. Stock decrements floor at zero; a book with
// Stock == 0 is considered "dado de baja" and shows up in the bajas listing.
type Libro struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ISBN      string    `gorm:"uniqueIndex;not null"`
	Titulo    string    `gorm:"index;not null"`
	Autor     string    `gorm:"index"`
	Editorial string
	Precio    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
