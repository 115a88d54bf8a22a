package handler

import (
	"github.com/gofiber/fiber/v2"

	"projectapi/internal/service"
)

// ListReminders godoc
// @Summary      List reminders
// @Description  Lists reminders by due time with their status as of now
// @Tags         reminders
// @Produce      json
// @Param        project_id  query  string  false  "Project ID"
// @Param        limit       query  int     false  "Page size"  default(10)
// @Param        offset      query  int     false  "Offset"     default(0)
// @Success      200  {object}  listResponse[reminderResponse]
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/reminders [get]
func ListReminders(svc service.ReminderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		projectID, limit, offset, err := listQuery(c)
		if err != nil {
			return handleError(c, err)
		}
		res, err := svc.List(c.UserContext(), requester(c), projectID, limit, offset)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(presentList(res, presentReminder))
	}
}

// CreateReminder godoc
// @Summary      Create reminder
// @Description  The due time must lie in the future; the initial status is derived from it
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        body  body  service.ReminderInput  true  "Reminder"
// @Success      201  {object}  reminderResponse
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/reminders [post]
func CreateReminder(svc service.ReminderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ReminderInput
		if err := bindJSON(c, &in); err != nil {
			return handleError(c, err)
		}
		if err := checkProjectRef(in.ProjectID); err != nil {
			return handleError(c, err)
		}
		r, err := svc.Create(c.UserContext(), requester(c), in)
		if err != nil {
			return handleError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(presentReminder(*r))
	}
}

// GetReminder godoc
// @Summary      Get reminder
// @Tags         reminders
// @Produce      json
// @Param        id  path  string  true  "Reminder ID"
// @Success      200  {object}  reminderResponse
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/reminders/{id} [get]
func GetReminder(svc service.ReminderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		r, err := svc.Get(c.UserContext(), requester(c), id)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(presentReminder(*r))
	}
}

// UpdateReminder serves PUT and PATCH alike: omitted fields are left alone.
//
// @Summary      Update reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Reminder ID"
// @Param        body  body  service.ReminderInput  true  "Reminder"
// @Success      200  {object}  reminderResponse
// @Failure      400  {object}  errorPayload
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/reminders/{id} [put]
// @Router       /api/reminders/{id} [patch]
func UpdateReminder(svc service.ReminderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c, "id")
		if err != nil {
			return handleError(c, err)
		}
		var in service.ReminderInput
		if err := bindJSON(c, &in); err != nil {
			return handleError(c, err)
		}
		r, err := svc.Update(c.UserContext(), requester(c), id, in)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(presentReminder(*r))
	}
}

// DeleteReminder godoc
// @Summary      Delete reminder
// @Tags         reminders
// @Param        id  path  string  true  "Reminder ID"
// @Success      204
// @Failure      403  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Security     BearerAuth
// @Router       /api/reminders/{id} [delete]
func DeleteReminder(svc service.ReminderService) fiber.Handler {
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
