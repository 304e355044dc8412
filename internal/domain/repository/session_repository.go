package repository

import (
	"time"

	"github.com/amber-studios/workspace-api/internal/domain/entity"
)

// SessionRepository puerto de persistencia de sesiones activas.
type SessionRepository interface {
	Get(id string) (*entity.Session, bool)
	Put(ses entity.Session) error
	Delete(id string) error
	// DeleteExpired poda sesiones vencidas respecto a now.
	DeleteExpired(now time.Time) error
}
