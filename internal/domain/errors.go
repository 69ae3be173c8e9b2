package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInvalidInput = errors.New("entrada inválida")
)

// ValidationReason clasifica el motivo de rechazo de un valor de atributo.
type ValidationReason string

const (
	ReasonUnknownAttribute ValidationReason = "UNKNOWN_ATTRIBUTE"
	ReasonMissingRequired  ValidationReason = "MISSING_REQUIRED"
	ReasonBadType          ValidationReason = "BAD_TYPE"
	ReasonNotInEnum        ValidationReason = "NOT_IN_ENUM"
	ReasonDuplicateUnique  ValidationReason = "DUPLICATE_UNIQUE"
	ReasonNoCategory       ValidationReason = "NO_CATEGORY"
)

// ValidationError rechazo de un lote de atributos. La validación es
// todo-o-nada: se reporta el primer atributo que falla y nada se persiste.
type ValidationError struct {
	Attribute string
	Reason    ValidationReason
	Message   string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError construye el error estructurado.
func NewValidationError(attribute string, reason ValidationReason, message string) *ValidationError {
	return &ValidationError{Attribute: attribute, Reason: reason, Message: message}
}

// AsValidation extrae el *ValidationError de err si lo envuelve.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
