// Package apierror provides the standardized error envelope for the API.
// All 4xx/5xx responses go through this package so that clients always get
// a stable machine-readable code plus a human-readable detail, and internal
// details (stack traces, DB errors) never leak.
package apierror

// Stable error codes surfaced to clients. Handlers pick the code from the
// service-layer sentinel error; the detail is free text for the UI.
const (
	CodeInvalidFormat       = "invalid_format"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeAdminRequired       = "admin_required"
	CodeNotOriginalAuthor   = "not_original_author"
	CodeShiftNotOpen        = "shift_not_open"
	CodeAlreadyOpen         = "already_open"
	CodeNotOpen             = "not_open"
	CodeNotFound            = "not_found"
	CodeAlreadyExists       = "already_exists"
	CodeInvalidTransition   = "invalid_transition"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeInternal            = "internal_error"
)

// APIError is the canonical error envelope for all error responses.
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func New(code, detail string) *APIError {
	return &APIError{Code: code, Detail: detail}
}

// ValidationError wraps per-field binding/validation failures.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeInvalidFormat, Detail: "Error de validacion", Fields: fields}
}
