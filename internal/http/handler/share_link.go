package handler

import (
	"github.com/gofiber/fiber/v2"

	"projectapi/internal/model"
	"projectapi/internal/service"
)

type shareLinkCreateRequest struct {
	Project string `json:"project"`
}

type shareLinkUpdateRequest struct {
	IsActive *bool `json:"is_active"`
}

// ShareProject godoc
// @Summary      Share a project
// @Description  Returns the project's active share link, creating one if needed
// @Tags         share-links
// @Produce      json
// @Param        project_id  path  string  true  "Project ID"
// @Success      200  {object}  shareLinkResponse  "existing link"
// @Success      201  {object}  shareLinkResponse  "new link"
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/projects/{project_id}/share [post]
func ShareProject(svc service.ShareLinkService, lp linkPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, err := pathID(c, "project_id")
		if err != nil {
			return handleError(c, err)
		}
		return ensureShareLink(c, svc, lp, projectID)
	}
}

// CreateShareLink godoc
// @Summary      Create share link
// @Description  Same as sharing the project: an active link is reused
// @Tags         share-links
// @Accept       json
// @Produce      json
// @Param        body  body  shareLinkCreateRequest  true  "Project reference"
// @Success      200  {object}  shareLinkResponse  "existing link"
// @Success      201  {object}  shareLinkResponse  "new link"
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/share-links [post]
func CreateShareLink(svc service.ShareLinkService, lp linkPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req shareLinkCreateRequest
		if err := bindJSON(c, &req); err != nil {
			return handleError(c, err)
		}
		if req.Project == "" {
			return handleError(c, validationError("project", "This field is required."))
		}
		if err := checkProjectRef(req.Project); err != nil {
			return handleError(c, err)
		}
		return ensureShareLink(c, svc, lp, req.Project)
	}
}

func ensureShareLink(c *fiber.Ctx, svc service.ShareLinkService, lp linkPresenter, projectID string) error {
	link, created, err := svc.Ensure(c.UserContext(), requester(c), projectID)
	if err != nil {
		return handleError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(lp.present(c)(*link))
}

// ListShareLinks godoc
// @Summary      List share links
// @Tags         share-links
// @Produce      json
// @Param        project_id  query  string  false  "Project ID"
// @Param        limit       query  int     false  "Page size"  default(10)
// @Param        offset      query  int     false  "Offset"     default(0)
// @Success      200  {object}  listResponse[shareLinkResponse]
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/share-links [get]
func ListShareLinks(svc service.ShareLinkService, lp linkPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, limit, offset, err := listQuery(c)
		if err != nil {
			return handleError(c, err)
		}
		res, err := svc.List(c.UserContext(), requester(c), projectID, limit, offset)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(presentList(res, lp.present(c)))
	}
}

// GetShareLink godoc
// @Summary      Get share link
// @Tags         share-links
// @Produce      json
// @Param        id  path  string  true  "Share link ID"
// @Success      200  {object}  shareLinkResponse
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/share-links/{id} [get]
func GetShareLink(svc service.ShareLinkService, lp linkPresenter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		link, err := svc.Get(c.UserContext(), requester(c), id)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(lp.present(c)(*link))
	}
}

// UpdateShareLink toggles is_active. The token itself never changes.
//
// @Summary      Activate or deactivate a share link
// @Tags         share-links
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Share link ID"
// @Param        body  body  shareLinkUpdateRequest  true  "Activation"
// @Success      200  {object}  shareLinkResponse
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      409  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/share-links/{id} [put]
// @Router       /api/share-links/{id} [patch]
func UpdateShareLink(svc service.ShareLinkService, lp linkPresenter, partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		var req shareLinkUpdateRequest
		if err := bindJSON(c, &req); err != nil {
			return handleError(c, err)
		}

		var link *model.ShareLink
		switch {
		case req.IsActive != nil:
			link, err = svc.SetActive(c.UserContext(), requester(c), id, *req.IsActive)
		case partial:
			link, err = svc.Get(c.UserContext(), requester(c), id)
		default:
			err = validationError("is_active", "This field is required.")
		}
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(lp.present(c)(*link))
	}
}

// DeleteShareLink godoc
// @Summary      Delete share link
// @Tags         share-links
// @Param        id  path  string  true  "Share link ID"
// @Success      204
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/share-links/{id} [delete]
func DeleteShareLink(svc service.ShareLinkService) fiber.Handler {
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

// ViewSharedProject godoc
// @Summary      Public share view
// @Description  Resolves an active share token. No authentication required.
// @Tags         share-links
// @Produce      json
// @Param        token  path  string  true  "Share token"
// @Success      200  {object}  sharedProjectResponse
// @Failure      404  {object}  errorPayload
// @Router       /api/shared/{token} [get]
func ViewSharedProject(svc service.ShareLinkService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Params("token")
		if token == "" {
			return handleError(c, service.ErrNotFound)
		}
		sp, err := svc.Resolve(c.UserContext(), token)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(presentShared(sp))
	}
}
