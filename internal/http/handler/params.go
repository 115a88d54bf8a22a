package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"projectapi/internal/http/middleware"
)

// requestError is a malformed request detected before any service call.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

var (
	errInvalidID     = &requestError{code: "INVALID_ID", message: "invalid id format"}
	errInvalidLimit  = &requestError{code: "INVALID_LIMIT", message: "invalid limit"}
	errInvalidOffset = &requestError{code: "INVALID_OFFSET", message: "invalid offset"}
	errBadBody       = &requestError{code: "BAD_REQUEST", message: "malformed request body"}
	errFileRequired  = &requestError{code: "FILE_REQUIRED", message: "file is required"}
)

// page parses limit & offset from the query string. Range clamping is left to the services.
func page(c *fiber.Ctx) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return 0, 0, errInvalidLimit
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return 0, 0, errInvalidOffset
	}
	return limit, offset, nil
}

// pathID returns the named path parameter if it is a UUID.
func pathID(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", errInvalidID
	}
	return id, nil
}

// listQuery reads pagination and the optional project_id filter.
func listQuery(c *fiber.Ctx) (projectID string, limit, offset int, err error) {
	projectID = c.Query("project_id")
	if projectID != "" {
		if _, err := uuid.Parse(projectID); err != nil {
			return "", 0, 0, errInvalidID
		}
	}
	limit, offset, err = page(c)
	return projectID, limit, offset, err
}

// checkProjectRef validates a project reference taken from a request body.
// Blank values pass through so the service reports them as required.
func checkProjectRef(pid string) error {
	if pid == "" {
		return nil
	}
	if _, err := uuid.Parse(pid); err != nil {
		return validationError("project", "Must be a valid UUID.")
	}
	return nil
}

func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errBadBody
	}
	return nil
}

func requester(c *fiber.Ctx) string {
	return middleware.UserID(c)
}
