package storage

import (
	"github.com/amber-studios/workspace-api/internal/domain/entity"
	"github.com/amber-studios/workspace-api/internal/domain/repository"
	"github.com/amber-studios/workspace-api/internal/infrastructure/kvstore"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo directorio de cuentas sobre el almacén clave-valor.
type AccountRepo struct {
	kv kvstore.Store
}

// NewAccountRepository construye el adaptador de persistencia de cuentas.
func NewAccountRepository(kv kvstore.Store) *AccountRepo {
	return &AccountRepo{kv: kv}
}

// List devuelve todas las cuentas; colección vacía si la clave falta o está
// corrupta.
func (r *AccountRepo) List() []entity.Account {
	var accounts []entity.Account
	r.kv.Read(keyUsers, &accounts)
	return accounts
}

// Replace sobrescribe la colección completa.
func (r *AccountRepo) Replace(accounts []entity.Account) error {
	if accounts == nil {
		accounts = []entity.Account{}
	}
	return r.kv.Write(keyUsers, accounts)
}
