package dto

import "github.com/shopspring/decimal"

type CrearPedidoRequest struct {
	Cliente  string          `json:"cliente"  validate:"required,min=1"`
	Telefono string          `json:"telefono"`
	Titulo   string          `json:"titulo"   validate:"required,min=1"`
	ISBN     *string         `json:"isbn"     validate:"omitempty,min=10,max=13"`
	Sena     decimal.Decimal `json:"sena"     validate:"min=0"`
	Notas    string          `json:"notas"`
}

type ActualizarPedidoRequest struct {
	Cliente  *string          `json:"cliente"  validate:"omitempty,min=1"`
	Telefono *string          `json:"telefono"`
	Titulo   *string          `json:"titulo"   validate:"omitempty,min=1"`
	ISBN     *string          `json:"isbn"     validate:"omitempty,min=10,max=13"`
	Sena     *decimal.Decimal `json:"sena"`
	Notas    *string          `json:"notas"`
}

type CambiarEstadoPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente encargado recibido entregado cancelado"`
}

type PedidoResponse struct {
	ID        string          `json:"id"`
	Cliente   string          `json:"cliente"`
	Telefono  string          `json:"telefono"`
	Titulo    string          `json:"titulo"`
	ISBN      *string         `json:"isbn"`
	Sena      decimal.Decimal `json:"sena"`
	Estado    string          `json:"estado"`
	Notas     string          `json:"notas"`
	CreatedAt string          `json:"created_at"`
}
