package repository

import "github.com/amber-studios/workspace-api/internal/domain/entity"

// UpdateRepository puerto de persistencia de las publicaciones. List devuelve
// los registros ya normalizados, en el orden en que fueron guardados (el
// motor mantiene la colección de más reciente a más antigua).
type UpdateRepository interface {
	List() []entity.Update
	Replace(updates []entity.Update) error
}
