package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amber-studios/workspace-api/internal/application/usecase"
)

// ScheduleHandler calendarios de turnos por grupo.
type ScheduleHandler struct {
	uc *usecase.ScheduleUseCase
}

// NewScheduleHandler construye el handler de calendarios.
func NewScheduleHandler(uc *usecase.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{uc: uc}
}

// Get godoc
// @Summary      Calendario de turnos del grupo (sm | dealer)
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        group  path  string  true  "sm o dealer"
// @Success      200  {object}  dto.ScheduleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/schedules/{group} [get]
func (h *ScheduleHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetSession(c), c.Params("group"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
