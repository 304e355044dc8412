package storage

import (
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/domain/repository"
	"github.com/amber-studios/workspace-api/internal/infrastructure/kvstore"
)

var _ repository.UpdateRepository = (*UpdateRepo)(nil)

// UpdateRepo publicaciones sobre el almacén clave-valor.
type UpdateRepo struct {
	kv kvstore.Store
}

// NewUpdateRepository construye el adaptador de persistencia de publicaciones.
func NewUpdateRepository(kv kvstore.Store) *UpdateRepo {
	return &UpdateRepo{kv: kv}
}

// List devuelve la colección normalizada (registros heredados reparados).
func (r *UpdateRepo) List() []entity.Update {
	var updates []entity.Update
	r.kv.Read(keyUpdates, &updates)
	for i := range updates {
		updates[i].Normalize()
	}
	return updates
}

// Replace sobrescribe la colección completa.
func (r *UpdateRepo) Replace(updates []entity.Update) error {
	if updates == nil {
		updates = []entity.Update{}
	}
	return r.kv.Write(keyUpdates, updates)
}
