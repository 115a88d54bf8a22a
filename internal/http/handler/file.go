package handler

import (
	"github.com/gofiber/fiber/v2"

	"projectapi/internal/service"
)

// ListFiles godoc
// @Summary      List project files
// @Tags         files
// @Produce      json
// @Param        project_id  query  string  true   "Project ID"
// @Param        limit       query  int     false  "Page size"  default(10)
// @Param        offset      query  int     false  "Offset"     default(0)
// @Success      200  {object}  service.ListResult[model.ProjectFile]
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/files [get]
func ListFiles(svc service.FileService) fiber.Handler {
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

// UploadFile godoc
// @Summary      Upload a file to a project
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "File content"
// @Param        project  formData  string  true   "Project ID"
// @Param        name     formData  string  false  "Display name, defaults to the file name"
// @Success      201  {object}  model.ProjectFile
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/files [post]
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return handleError(c, errFileRequired)
		}
		projectID := c.FormValue("project")
		if err := checkProjectRef(projectID); err != nil {
			return handleError(c, err)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		pf, err := svc.Upload(c.UserContext(), requester(c), f, service.FileUpload{
			ProjectID:        projectID,
			Name:             c.FormValue("name"),
			OriginalFilename: fh.Filename,
			ContentType:      ct,
			Size:             fh.Size,
		})
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(pf)
	}
}

// GetFile godoc
// @Summary      Get a file with a presigned download URL
// @Tags         files
// @Produce      json
// @Param        id  path  string  true  "File ID"
// @Success      200  {object}  service.FileDownload
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/files/{id} [get]
func GetFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		f, err := svc.Get(c.UserContext(), requester(c), id)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(f)
	}
}

// DeleteFile godoc
// @Summary      Delete a file
// @Tags         files
// @Param        id  path  string  true  "File ID"
// @Success      204
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/files/{id} [delete]
func DeleteFile(svc service.FileService) fiber.Handler {
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
