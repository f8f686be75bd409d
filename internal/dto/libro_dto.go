package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearLibroRequest struct {
	ISBN      string          `json:"isbn"      validate:"required,min=10,max=13"`
	Titulo    string          `json:"titulo"    validate:"required,min=1"`
	Autor     string          `json:"autor"`
	Editorial string          `json:"editorial"`
	Precio    decimal.Decimal `json:"precio"    validate:"min=0"`
	Stock     int             `json:"stock"     validate:"min=0"`
}

type ActualizarLibroRequest struct {
	Titulo    *string          `json:"titulo"    validate:"omitempty,min=1"`
	Autor     *string          `json:"autor"`
	Editorial *string          `json:"editorial"`
	Precio    *decimal.Decimal `json:"precio"`
}

// AjustarStockRequest moves stock by Delta; negative deltas floor at zero.
type AjustarStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// LibroFilter narrows the listing; zero values mean "no filter".
type LibroFilter struct {
	ISBN   string
	Titulo string
	Autor  string
	Page   int
	Limit  int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LibroResponse struct {
	ID        string          `json:"id"`
	ISBN      string          `json:"isbn"`
	Titulo    string          `json:"titulo"`
	Autor     string          `json:"autor"`
	Editorial string          `json:"editorial"`
	Precio    decimal.Decimal `json:"precio"`
	Stock     int             `json:"stock"`
}
