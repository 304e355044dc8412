package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amber-studios/workspace-api/internal/application/dto"
	"github.com/amber-studios/workspace-api/internal/application/usecase"
	"github.com/amber-studios/workspace-api/internal/domain/entity"
)

// UpdateHandler tablón de publicaciones: ciclo de vida, confirmaciones,
// matriz y exportaciones.
type UpdateHandler struct {
	updates *usecase.UpdateUseCase
	matrix  *usecase.MatrixUseCase
	export  *usecase.ExportUseCase
}

// NewUpdateHandler construye el handler del tablón.
func NewUpdateHandler(updates *usecase.UpdateUseCase, matrix *usecase.MatrixUseCase, export *usecase.ExportUseCase) *UpdateHandler {
	return &UpdateHandler{updates: updates, matrix: matrix, export: export}
}

// listOptions traduce los query params a opciones de listado. Una cuenta que
// no es admin ni operation solo ve aprobadas, pida lo que pida.
func listOptions(c *fiber.Ctx, ses *entity.Session) usecase.ListOptions {
	opts := usecase.ListOptions{IncludeApproved: true}
	if ses.IsAdmin() || ses.IsOperation() {
		opts.IncludePending = c.QueryBool("pending", true)
		opts.IncludeArchived = c.QueryBool("archived", false)
		opts.OwnPendingAlways = true
	}
	return opts
}

// Create godoc
// @Summary      Publicar una entrada (admin directo, operation como pendiente)
// @Tags         updates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUpdateRequest  true  "html, text, imageUrl"
// @Success      201   {object}  entity.Update
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/updates [post]
func (h *UpdateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.updates.Create(GetSession(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar publicaciones del país (más recientes primero)
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Param        pending   query  bool  false  "incluir pendientes (solo admin/operation)"
// @Param        archived  query  bool  false  "incluir archivadas (solo admin/operation)"
// @Success      200  {array}  entity.Update
// @Router       /api/updates [get]
func (h *UpdateHandler) List(c *fiber.Ctx) error {
	ses := GetSession(c)
	out := h.updates.List(ses, listOptions(c, ses))
	if out == nil {
		out = []entity.Update{}
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener una publicación
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id de la publicación"
// @Success      200  {object}  entity.Update
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/updates/{id} [get]
func (h *UpdateHandler) Get(c *fiber.Ctx) error {
	out, err := h.updates.Get(GetSession(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar contenido y, para admin, estado
// @Tags         updates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id de la publicación"
// @Param        body  body  dto.EditUpdateRequest  true  "campos a cambiar"
// @Success      200   {object}  entity.Update
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/updates/{id} [patch]
func (h *UpdateHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.updates.Edit(GetSession(c), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar una publicación pendiente (idempotente)
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id de la publicación"
// @Success      200  {object}  entity.Update
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/updates/{id}/approve [post]
func (h *UpdateHandler) Approve(c *fiber.Ctx) error {
	out, err := h.updates.Approve(GetSession(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar una publicación
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id de la publicación"
// @Success      200  {object}  entity.Update
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/updates/{id}/archive [post]
func (h *UpdateHandler) Archive(c *fiber.Ctx) error {
	out, err := h.updates.Archive(GetSession(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar una publicación (definitivo)
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "id de la publicación"
// @Success      200  {object}  dto.StatusResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/updates/{id} [delete]
func (h *UpdateHandler) Delete(c *fiber.Ctx) error {
	if err := h.updates.Delete(GetSession(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.StatusResponse{OK: true})
}

// Acknowledge godoc
// @Summary      Confirmar lectura (propia o supervisada)
// @Tags         updates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "id de la publicación"
// @Param        body  body  dto.AcknowledgeRequest  false  "target opcional (admin/operation)"
// @Success      200   {object}  entity.Update
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/updates/{id}/ack [post]
func (h *UpdateHandler) Acknowledge(c *fiber.Ctx) error {
	var in dto.AcknowledgeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.updates.Acknowledge(GetSession(c), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Matrix godoc
// @Summary      Matriz de confirmaciones por destinatario
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Param        pending   query  bool  false  "incluir pendientes"
// @Param        archived  query  bool  false  "incluir archivadas"
// @Success      200  {array}   dto.AckMatrixRow
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/updates/matrix [get]
func (h *UpdateHandler) Matrix(c *fiber.Ctx) error {
	ses := GetSession(c)
	out, err := h.matrix.AckMatrix(ses, listOptions(c, ses))
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		out = []dto.AckMatrixRow{}
	}
	return c.JSON(out)
}

// SMUsers godoc
// @Summary      Roster de destinatarios de la matriz
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.SMUserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/updates/sm-users [get]
func (h *UpdateHandler) SMUsers(c *fiber.Ctx) error {
	out, err := h.matrix.SMUsers(GetSession(c))
	if err != nil {
		return errorJSON(c, err)
	}
	if out == nil {
		out = []dto.SMUserResponse{}
	}
	return c.JSON(out)
}

// Unread godoc
// @Summary      Contador de aprobadas no leídas
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UnreadResponse
// @Router       /api/updates/unread [get]
func (h *UpdateHandler) Unread(c *fiber.Ctx) error {
	return c.JSON(h.updates.UnreadCount(GetSession(c)))
}

// MarkAllRead godoc
// @Summary      Marcar todo como leído
// @Tags         updates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UnreadResponse
// @Router       /api/updates/read-all [post]
func (h *UpdateHandler) MarkAllRead(c *fiber.Ctx) error {
	last, err := h.updates.MarkAllRead(GetSession(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(dto.UnreadResponse{Count: 0, LastRead: last})
}

// ExportCSV godoc
// @Summary      Descargar el registro en CSV (solo admin)
// @Tags         updates
// @Produce      text/csv
// @Security     BearerAuth
// @Param        month  query  string  false  "filtro YYYY-MM"
// @Success      200  {string}  string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/updates/export.csv [get]
func (h *UpdateHandler) ExportCSV(c *fiber.Ctx) error {
	data, filename, err := h.export.CSV(GetSession(c), c.Query("month"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Descargar el registro en PDF (solo admin)
// @Tags         updates
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        month  query  string  false  "filtro YYYY-MM"
// @Success      200  {string}  string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/updates/export.pdf [get]
func (h *UpdateHandler) ExportPDF(c *fiber.Ctx) error {
	data, filename, err := h.export.PDF(GetSession(c), c.Query("month"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
