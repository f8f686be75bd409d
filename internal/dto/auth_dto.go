package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Identidad string `json:"identidad" validate:"required,min=1,max=5"`
	Secreto   string `json:"secreto"   validate:"required"`
}

// RotarSecretoRequest rotates a staff PIN by proving the current one.
type RotarSecretoRequest struct {
	Identidad     string `json:"identidad"      validate:"required,min=1,max=5"`
	SecretoActual string `json:"secreto_actual" validate:"required"`
	NuevoSecreto  string `json:"nuevo_secreto"  validate:"required"`
}

// ResetSecretoRequest is the forgotten-PIN path: an admin sets a new secret.
type ResetSecretoRequest struct {
	Admin        CredencialRequest `json:"admin"         validate:"required"`
	Identidad    string            `json:"identidad"     validate:"required,min=1,max=5"`
	NuevoSecreto string            `json:"nuevo_secreto" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VerificarResponse struct {
	OK bool `json:"ok"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
	Identidad   string `json:"identidad"`
	Nombre      string `json:"nombre"`
	Rol         string `json:"rol"` // "staff" | "admin"
}
