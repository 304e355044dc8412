package repository

import "github.com/amber-studios/workspace-api/internal/domain/entity"

// AccountRepository puerto de persistencia del directorio de cuentas. Las
// colecciones se leen y escriben completas: el almacén subyacente es
// clave-valor y la lectura degrada a colección vacía ante datos corruptos.
type AccountRepository interface {
	List() []entity.Account
	Replace(accounts []entity.Account) error
}
