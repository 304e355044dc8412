package usecase

import "github.com/amber-studios/workspace-api/internal/domain/entity"

// UpdatesPDFGenerator puerto de salida para el registro de publicaciones en
// PDF. La implementación vive en infraestructura.
type UpdatesPDFGenerator interface {
	UpdatesRegister(title string, updates []entity.Update) ([]byte, error)
}

// ScheduleFile un CSV de turnos ya parseado: el nombre base del fichero (se
// usa como título de respaldo) y sus filas crudas.
type ScheduleFile struct {
	Name string
	Rows [][]string
}

// ScheduleSource puerto de entrada de los calendarios de turnos. Cada grupo
// publica dos ficheros por país, en orden fijo.
type ScheduleSource interface {
	Tables(group, country string) ([]ScheduleFile, error)
}
