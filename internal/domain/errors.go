package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente en el lote")

	// ErrUnknownChannel canal de adquisición fuera de {LOCAL, IMPORTED}:
	// error de integridad de datos, el lote no se cuenta en ningún canal.
	ErrUnknownChannel = errors.New("canal de adquisición desconocido")

	// ErrBatchSourceUnavailable la fuente de lotes falló. Se distingue de un
	// resultado vacío: "no pudimos saber el stock" nunca se reporta como cero.
	ErrBatchSourceUnavailable = errors.New("fuente de lotes no disponible")
)
