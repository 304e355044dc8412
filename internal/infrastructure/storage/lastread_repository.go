package storage

import (
	"github.com/amber-studios/workspace-api/internal/domain/repository"
	"github.com/amber-studios/workspace-api/internal/infrastructure/kvstore"
)

var _ repository.LastReadRepository = (*LastReadRepo)(nil)

// LastReadRepo marcas de última lectura, una clave por (login, país).
type LastReadRepo struct {
	kv kvstore.Store
}

// NewLastReadRepository construye el adaptador de marcas de lectura.
func NewLastReadRepository(kv kvstore.Store) *LastReadRepo {
	return &LastReadRepo{kv: kv}
}

func lastReadKey(loginID, country string) string {
	return lastReadKeyPrefix + loginID + "_" + country
}

// Get devuelve la marca ISO o cadena vacía si nunca se marcó.
func (r *LastReadRepo) Get(loginID, country string) string {
	var ts string
	r.kv.Read(lastReadKey(loginID, country), &ts)
	return ts
}

func (r *LastReadRepo) Set(loginID, country, isoTimestamp string) error {
	return r.kv.Write(lastReadKey(loginID, country), isoTimestamp)
}
