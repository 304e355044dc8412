package storage

import (
	"time"

	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/domain/repository"
	"github.com/amber-studios/workspace-api/internal/infrastructure/kvstore"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesiones activas, indexadas por id, bajo una única clave.
type SessionRepo struct {
	kv kvstore.Store
}

// NewSessionRepository construye el adaptador de persistencia de sesiones.
func NewSessionRepository(kv kvstore.Store) *SessionRepo {
	return &SessionRepo{kv: kv}
}

func (r *SessionRepo) load() map[string]entity.Session {
	sessions := map[string]entity.Session{}
	r.kv.Read(keySessions, &sessions)
	return sessions
}

func (r *SessionRepo) Get(id string) (*entity.Session, bool) {
	sessions := r.load()
	ses, ok := sessions[id]
	if !ok {
		return nil, false
	}
	return &ses, true
}

func (r *SessionRepo) Put(ses entity.Session) error {
	sessions := r.load()
	sessions[ses.ID] = ses
	return r.kv.Write(keySessions, sessions)
}

func (r *SessionRepo) Delete(id string) error {
	sessions := r.load()
	if _, ok := sessions[id]; !ok {
		return nil
	}
	delete(sessions, id)
	return r.kv.Write(keySessions, sessions)
}

func (r *SessionRepo) DeleteExpired(now time.Time) error {
	sessions := r.load()
	dirty := false
	for id, ses := range sessions {
		if (&ses).Expired(now) {
			delete(sessions, id)
			dirty = true
		}
	}
	if !dirty {
		return nil
	}
	return r.kv.Write(keySessions, sessions)
}
