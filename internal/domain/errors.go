package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso devuelven estos sentinels; la capa HTTP los traduce a códigos.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrGone                   = errors.New("recurso eliminado")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrUnsupportedDeviceType  = errors.New("tipo de dispositivo no soportado")
	// ErrNotificationFailure indica éxito degradado: la mutación de datos ya
	// quedó confirmada pero una o más notificaciones fallaron. Nunca revierte.
	ErrNotificationFailure = errors.New("fallo al enviar notificación")
)
