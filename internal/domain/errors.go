package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los errores específicos envuelven una de estas categorías con fmt.Errorf("%w: ...")
// para que la capa HTTP decida el status con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInvalidState = errors.New("transición de estado inválida")
	ErrInvalidToken = errors.New("token inválido o expirado")
)

// Errores específicos de auth y cuentas.
var (
	ErrUserNotFound           = wrap(ErrNotFound, "usuario no encontrado")
	ErrUsernameAlreadyExists  = wrap(ErrDuplicate, "el username ya está registrado")
	ErrEmailAlreadyExists     = wrap(ErrDuplicate, "el email ya está registrado")
	ErrInvalidCredentials     = wrap(ErrUnauthorized, "credenciales inválidas")
	ErrAccountDisabled        = wrap(ErrUnauthorized, "cuenta inactiva")
	ErrMissingIdentity        = wrap(ErrUnauthorized, "no hay usuario autenticado")
	ErrPasswordUnchanged      = wrap(ErrInvalidInput, "la nueva contraseña debe ser distinta de la actual")
	ErrRequestNotFound        = wrap(ErrNotFound, "solicitud de cuenta no encontrada")
	ErrRequestAlreadyExists   = wrap(ErrDuplicate, "ya existe una solicitud para ese email")
	ErrRequestAlreadyReviewed = wrap(ErrInvalidState, "la solicitud ya fue revisada")
	ErrInvalidDecision        = wrap(ErrInvalidState, "decisión inválida, use APPROVE o REJECT")
)

// Errores específicos de consumidores, tarifas y facturación.
var (
	ErrConsumerNotFound     = wrap(ErrNotFound, "consumidor no encontrado")
	ErrConsumerInactive     = wrap(ErrInvalidState, "el consumidor está inactivo")
	ErrMobileAlreadyExists  = wrap(ErrDuplicate, "el número móvil ya está registrado")
	ErrTariffPlanNotFound   = wrap(ErrNotFound, "plan tarifario no encontrado")
	ErrTariffPlanExists     = wrap(ErrDuplicate, "ya existe un plan con ese tipo de servicio y código")
	ErrNoActiveTariffPlan   = wrap(ErrInvalidState, "no hay plan tarifario activo para el servicio")
	ErrPlanWithoutSlabs     = wrap(ErrInvalidState, "el plan tarifario activo no tiene tramos")
	ErrTariffSlabNotFound   = wrap(ErrNotFound, "tramo tarifario no encontrado")
	ErrTariffSlabOverlap    = wrap(ErrConflict, "el tramo se solapa con otro del mismo plan")
	ErrBillNotFound         = wrap(ErrNotFound, "factura no encontrada")
	ErrBillAlreadyGenerated = wrap(ErrDuplicate, "ya existe una factura para ese consumidor, servicio y período")
)

type wrapped struct {
	parent error
	msg    string
}

func (e *wrapped) Error() string { return e.msg }
func (e *wrapped) Unwrap() error { return e.parent }

func wrap(parent error, msg string) error {
	return &wrapped{parent: parent, msg: msg}
}
