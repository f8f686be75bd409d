package model

import (
	"time"

	"github.com/google/uuid"
)

// Credencial stores one staff identity and its secret hash.
// Identidad is a single staff letter (e.g. "F") or the literal "admin".
// Tipo: "pin" (3-5 alphanumeric chars) | "admin_password" (>= 6 chars).
// Secrets are stored as bcrypt hashes, never in plaintext.
type Credencial struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Identidad   string    `gorm:"uniqueIndex;not null"`
	Nombre      string    `gorm:"not null"`
	SecretoHash string    `gorm:"not null"`
	Tipo        string    `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Credencial) TableName() string { return "credenciales" }
