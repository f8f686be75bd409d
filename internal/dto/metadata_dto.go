package dto

import "github.com/shopspring/decimal"

// MetadataResponse is the book metadata resolved from the retailer sidecar
// (or from cache). Precio may be zero when the source lists no price.
type MetadataResponse struct {
	Titulo    string          `json:"titulo"`
	Autor     string          `json:"autor"`
	Editorial string          `json:"editorial"`
	Precio    decimal.Decimal `json:"precio"`
	Fuente    string          `json:"fuente"`
	URL       string          `json:"url"`
}
