package handler

import (
	"github.com/gofiber/fiber/v2"

	"projectapi/internal/service"
)

type noteRequest struct {
	Project string  `json:"project"`
	Content *string `json:"content"`
}

// ListNotes godoc
// @Summary      List notes
// @Description  Lists notes of the caller's projects newest first, optionally for one project
// @Tags         notes
// @Produce      json
// @Param        project_id  query  string  false  "Project ID"
// @Param        limit       query  int     false  "Page size"  default(10)
// @Param        offset      query  int     false  "Offset"     default(0)
// @Success      200  {object}  service.ListResult[model.ProjectNote]
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/notes [get]
func ListNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, limit, offset, err := listQuery(c)
		if err != nil {
			return handleError(c, err)
		}
		res, err := svc.List(c.UserContext(), requester(c), projectID, limit, offset)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateNote godoc
// @Summary      Create note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body  noteRequest  true  "Note"
// @Success      201  {object}  model.ProjectNote
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/notes [post]
func CreateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req noteRequest
		if err := bindJSON(c, &req); err != nil {
			return handleError(c, err)
		}
		if err := checkProjectRef(req.Project); err != nil {
			return handleError(c, err)
		}
		var content string
		if req.Content != nil {
			content = *req.Content
		}
		n, err := svc.Create(c.UserContext(), requester(c), req.Project, content)
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	}
}

// GetNote godoc
// @Summary      Get note
// @Tags         notes
// @Produce      json
// @Param        id  path  string  true  "Note ID"
// @Success      200  {object}  model.ProjectNote
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/notes/{id} [get]
func GetNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		n, err := svc.Get(c.UserContext(), requester(c), id)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(n)
	}
}

// UpdateNote rewrites the note content. A PATCH without content leaves the note unchanged.
//
// @Summary      Update note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path  string       true  "Note ID"
// @Param        body  body  noteRequest  true  "Note"
// @Success      200  {object}  model.ProjectNote
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/notes/{id} [put]
// @Router       /api/notes/{id} [patch]
func UpdateNote(svc service.NoteService, partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		var req noteRequest
		if err := bindJSON(c, &req); err != nil {
			return handleError(c, err)
		}
		if req.Content == nil && partial {
			n, err := svc.Get(c.UserContext(), requester(c), id)
			if err != nil {
				return handleError(c, err)
			}
			return c.JSON(n)
		}
		var content string
		if req.Content != nil {
			content = *req.Content
		}
		n, err := svc.Update(c.UserContext(), requester(c), id, content)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(n)
	}
}

// DeleteNote godoc
// @Summary      Delete note
// @Tags         notes
// @Param        id  path  string  true  "Note ID"
// @Success      204
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/notes/{id} [delete]
func DeleteNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		if err := svc.Delete(c.UserContext(), requester(c), id); err != nil {
			return handleError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
