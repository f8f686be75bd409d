package model

import (
	"time"

	"github.com/google/uuid"
)

// Faltante is one missing-title entry on the restock wishlist.
type Faltante struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ISBN      *string
	Titulo    string `gorm:"not null"`
	Cantidad  int    `gorm:"not null;default:1"`
	Nota      string
	CreatedAt time.Time
}
