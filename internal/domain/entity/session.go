package entity

import "time"

// Session sesión establecida tras autenticarse. Cada operación del motor la
// recibe como parámetro explícito: no existe sesión ambiente ni singleton.
type Session struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	AccountType string    `json:"accountType,omitempty"`
	LoginID     string    `json:"loginId"`
	Name        string    `json:"name,omitempty"`
	Surname     string    `json:"surname,omitempty"`
	Country     string    `json:"country"`
	SignedInAt  time.Time `json:"signedInAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// IsAdmin indica si el actor es el administrador.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// IsOperation indica si el actor es una cuenta Operation (rol sm, tipo
// operation): puede redactar publicaciones que quedan pendientes de
// aprobación.
func (s *Session) IsOperation() bool {
	return s != nil && s.Role == RoleSM && s.AccountType == AccountTypeOperation
}

// Expired indica si la sesión venció respecto a now. La expiración se evalúa
// en el momento de la lectura; no hay proceso de limpieza en segundo plano.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
