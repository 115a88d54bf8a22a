package handler

import (
	"github.com/gofiber/fiber/v2"

	"projectapi/internal/service"
)

type commentRequest struct {
	Project string  `json:"project"`
	Message *string `json:"message"`
}

// ListComments godoc
// @Summary      List comments
// @Description  Lists comments on the caller's projects newest first, optionally for one project
// @Tags         comments
// @Produce      json
// @Param        project_id  query  string  false  "Project ID"
// @Param        limit       query  int     false  "Page size"  default(10)
// @Param        offset      query  int     false  "Offset"     default(0)
// @Success      200  {object}  service.ListResult[model.Comment]
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/comments [get]
func ListComments(svc service.CommentService) fiber.Handler {
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

// CreateComment godoc
// @Summary      Create comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body  commentRequest  true  "Comment"
// @Success      201  {object}  model.Comment
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/comments [post]
func CreateComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req commentRequest
		if err := bindJSON(c, &req); err != nil {
			return handleError(c, err)
		}
		if err := checkProjectRef(req.Project); err != nil {
			return handleError(c, err)
		}
		var message string
		if req.Message != nil {
			message = *req.Message
		}
		cm, err := svc.Create(c.UserContext(), requester(c), req.Project, message)
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cm)
	}
}

// GetComment godoc
// @Summary      Get comment
// @Tags         comments
// @Produce      json
// @Param        id  path  string  true  "Comment ID"
// @Success      200  {object}  model.Comment
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/comments/{id} [get]
func GetComment(svc service.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		cm, err := svc.Get(c.UserContext(), requester(c), id)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(cm)
	}
}

// UpdateComment replaces the comment message. A PATCH without message leaves the comment unchanged.
//
// @Summary      Update comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path  string       true  "Comment ID"
// @Param        body  body  commentRequest  true  "Comment"
// @Success      200  {object}  model.Comment
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/comments/{id} [put]
// @Router       /api/comments/{id} [patch]
func UpdateComment(svc service.CommentService, partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		var req commentRequest
		if err := bindJSON(c, &req); err != nil {
			return handleError(c, err)
		}
		if req.Message == nil && partial {
			cm, err := svc.Get(c.UserContext(), requester(c), id)
			if err != nil {
				return handleError(c, err)
			}
			return c.JSON(cm)
		}
		var message string
		if req.Message != nil {
			message = *req.Message
		}
		cm, err := svc.Update(c.UserContext(), requester(c), id, message)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(cm)
	}
}

// DeleteComment godoc
// @Summary      Delete comment
// @Tags         comments
// @Param        id  path  string  true  "Comment ID"
// @Success      204
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/comments/{id} [delete]
func DeleteComment(svc service.CommentService) fiber.Handler {
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
