package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"projectapi/internal/model"
	"projectapi/internal/service"
	"projectapi/internal/share"
)

const dateLayout = "2006-01-02"

// listResponse mirrors service.ListResult for any presented item type.
type listResponse[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

func presentList[M, T any](res *service.ListResult[M], fn func(M) T) listResponse[T] {
	items := make([]T, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, fn(it))
	}
	return listResponse[T]{Items: items, Total: res.Total}
}

type projectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func presentProject(p model.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDate(p.EndDate),
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type reminderResponse struct {
	model.Reminder
	StatusDisplay string `json:"status_display"`
}

func presentReminder(r model.Reminder) reminderResponse {
	return reminderResponse{Reminder: r, StatusDisplay: r.Status.Display()}
}

type shareLinkResponse struct {
	ID            string    `json:"id"`
	Project       string    `json:"project"`
	ProjectName   string    `json:"project_name"`
	Token         string    `json:"token"`
	ShareURL      string    `json:"share_url"`
	WhatsAppURL   string    `json:"whatsapp_url"`
	MailtoURL     string    `json:"mailto_url"`
	CreatedAt     time.Time `json:"created_at"`
	IsActive      bool      `json:"is_active"`
	CreatedBy     *string   `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
}

// linkPresenter renders share links against a base URL. When no public base
// URL is configured the request's scheme and host are used.
type linkPresenter struct {
	publicBaseURL string
}

func (p linkPresenter) base(c *fiber.Ctx) string {
	if p.publicBaseURL != "" {
		return strings.TrimRight(p.publicBaseURL, "/")
	}
	return c.BaseURL()
}

func (p linkPresenter) present(c *fiber.Ctx) func(model.ShareLink) shareLinkResponse {
	base := p.base(c)
	return func(l model.ShareLink) shareLinkResponse {
		links := share.BuildLinks(base, l.Token, l.ProjectName)
		return shareLinkResponse{
			ID:            l.ID,
			Project:       l.ProjectID,
			ProjectName:   l.ProjectName,
			Token:         l.Token,
			ShareURL:      links.Share,
			WhatsAppURL:   links.WhatsApp,
			MailtoURL:     links.Mailto,
			CreatedAt:     l.CreatedAt,
			IsActive:      l.IsActive,
			CreatedBy:     l.CreatedBy,
			CreatedByName: l.CreatedByName,
		}
	}
}

type sharedProjectResponse struct {
	Project   projectResponse     `json:"project"`
	OwnerName string              `json:"owner_name"`
	Notes     []model.ProjectNote `json:"notes"`
}

func presentShared(sp *service.SharedProject) sharedProjectResponse {
	notes := sp.Notes
	if notes == nil {
		notes = []model.ProjectNote{}
	}
	return sharedProjectResponse{
		Project:   presentProject(sp.Project),
		OwnerName: sp.OwnerName,
		Notes:     notes,
	}
}
