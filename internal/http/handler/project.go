package handler

import (
	"github.com/gofiber/fiber/v2"

	"projectapi/internal/service"
)

// ListProjects godoc
// @Summary      List projects
// @Description  Lists the caller's projects newest first
// @Tags         projects
// @Produce      json
// @Param        limit   query  int  false  "Page size"  default(10)
// @Param        offset  query  int  false  "Offset"     default(0)
// @Success      200  {object}  listResponse[projectResponse]
// @Failure      400  {object}  errorPayload
// @Failure      401  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/projects [get]
func ListProjects(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := page(c)
		if err != nil {
			return handleError(c, err)
		}
		res, err := svc.List(c.UserContext(), requester(c), limit, offset)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(presentList(res, presentProject))
	}
}

// CreateProject godoc
// @Summary      Create project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  service.ProjectInput  true  "Project"
// @Success      201  {object}  projectResponse
// @Failure      400  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/projects [post]
func CreateProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProjectInput
		if err := bindJSON(c, &in); err != nil {
			return handleError(c, err)
		}
		p, err := svc.Create(c.UserContext(), requester(c), in)
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(presentProject(*p))
	}
}

// GetProject godoc
// @Summary      Get project
// @Tags         projects
// @Produce      json
// @Param        id  path  string  true  "Project ID"
// @Success      200  {object}  projectResponse
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/projects/{id} [get]
func GetProject(svc service.ProjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		p, err := svc.Get(c.UserContext(), requester(c), id)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(presentProject(*p))
	}
}

// UpdateProject serves both PUT (full replacement) and PATCH (partial).
//
// @Summary      Update project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Project ID"
// @Param        body  body  service.ProjectInput  true  "Project"
// @Success      200  {object}  projectResponse
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/projects/{id} [put]
// @Router       /api/projects/{id} [patch]
func UpdateProject(svc service.ProjectService, partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		var in service.ProjectInput
		if err := bindJSON(c, &in); err != nil {
			return handleError(c, err)
		}
		p, err := svc.Update(c.UserContext(), requester(c), id, in, partial)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(presentProject(*p))
	}
}

// DeleteProject godoc
// @Summary      Delete project
// @Description  Deletes the project with everything attached to it
// @Tags         projects
// @Param        id  path  string  true  "Project ID"
// @Success      204
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/projects/{id} [delete]
func DeleteProject(svc service.ProjectService) fiber.Handler {
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
