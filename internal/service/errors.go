package service

import "errors"

// Sentinel errors shared across services. Handlers map each one to an HTTP
// status plus a stable apierror code; business-rule failures are always
// returned as values, never panicked across the API boundary.
var (
	// Credential failures
	ErrFormatoInvalido       = errors.New("formato de credencial invalido")
	ErrCredencialesInvalidas = errors.New("credenciales invalidas")
	ErrAdminRequerido        = errors.New("se requiere la contraseña de administrador")
	ErrNoEsAutorOriginal     = errors.New("solo quien registro el movimiento puede modificarlo")

	// Shift lifecycle
	ErrYaAbierto       = errors.New("ya existe un turno abierto")
	ErrSinTurnoAbierto = errors.New("no hay un turno abierto para registrar movimientos")
	ErrTurnoNoAbierto  = errors.New("el turno no esta abierto")

	// Generic
	ErrMontoInvalido = errors.New("el monto debe ser mayor a 0")
	ErrNoEncontrado  = errors.New("no encontrado")
	ErrYaExiste      = errors.New("ya existe un registro con esa clave")

	// Pedidos
	ErrTransicionInvalida = errors.New("transicion de estado invalida")

	// Metadata collaborator — non-fatal, callers degrade to manual entry
	ErrUpstreamNoDisponible = errors.New("servicio de metadatos no disponible")
)
