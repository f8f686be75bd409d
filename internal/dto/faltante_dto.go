package dto

type CrearFaltanteRequest struct {
	ISBN     *string `json:"isbn"     validate:"omitempty,min=10,max=13"`
	Titulo   string  `json:"titulo"   validate:"required,min=1"`
	Cantidad int     `json:"cantidad" validate:"min=1"`
	Nota     string  `json:"nota"`
}

type FaltanteResponse struct {
	ID        string  `json:"id"`
	ISBN      *string `json:"isbn"`
	Titulo    string  `json:"titulo"`
	Cantidad  int     `json:"cantidad"`
	Nota      string  `json:"nota"`
	CreatedAt string  `json:"created_at"`
}
