package dto

import "github.com/amber-studios/workspace-api/internal/domain/entity"

// ScheduleResponse los dos bloques de calendario del grupo pedido, ya
// filtrados según la visibilidad del actor.
type ScheduleResponse struct {
	Group   string                 `json:"group"`
	Country string                 `json:"country"`
	Blocks  []entity.ScheduleBlock `json:"blocks"`
}
