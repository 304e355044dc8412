package domain

import "errors"

// Errores de dominio (sin dependencias externas). El motor nunca lanza pánico
// por violaciones de política: siempre devuelve uno de estos centinelas,
// opcionalmente envuelto con contexto (%w).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrAccountNotFound = errors.New("cuenta no encontrada")
	ErrUnauthorized    = errors.New("credenciales inválidas")
	ErrForbidden       = errors.New("acceso denegado")
	ErrCountryMismatch = errors.New("el país de la sesión no coincide con el recurso")
	ErrEmptyContent    = errors.New("la publicación no tiene texto ni imagen")
	ErrInvalidStatus   = errors.New("estado fuera del ciclo pending/approved/archived")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrSessionExpired  = errors.New("sesión expirada")
)
