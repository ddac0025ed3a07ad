package service

import "errors"

// Errores terminales de la interacción en curso; el adapter los traduce a
// mensajes efímeros. Nunca se reintentan solos.
var (
	ErrConfigMissing      = errors.New("verify config missing")
	ErrResolutionFailed   = errors.New("channel or role no longer resolves")
	ErrRoleMissing        = errors.New("verify role missing")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidPhone       = errors.New("invalid phone")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidCountryCode = errors.New("invalid country code")
	ErrJoinFailed         = errors.New("voice join failed")
)
