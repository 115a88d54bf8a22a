package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"projectapi/internal/http/middleware"
	"projectapi/internal/service"
)

// Services groups the use cases exposed over HTTP.
type Services struct {
	Projects   service.ProjectService
	Files      service.FileService
	Notes      service.NoteService
	Comments   service.CommentService
	Reminders  service.ReminderService
	ShareLinks service.ShareLinkService
}

// Deps carries everything RegisterRoutes wires into the handlers.
type Deps struct {
	DB *sql.DB
	// Storage is checked by /health when set.
	Storage  ReadinessChecker
	Auth     middleware.TokenValidator
	Services Services
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// PublicBaseURL prefixes share URLs. Empty means the request's scheme and host.
	PublicBaseURL string
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parsing, service call, presentation.
func RegisterRoutes(app *fiber.App, d Deps) {
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	lp := linkPresenter{publicBaseURL: d.PublicBaseURL}

	app.Get("/health", HealthCheck(d.DB, d.Storage))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", Metrics(gatherer))

	// Share page the issued share_url points at. Trailing slash is optional.
	app.Get("/projects/shared/:token", ViewSharedProject(d.Services.ShareLinks))

	api := app.Group("/api")

	// Public share view for API clients, registered ahead of the authenticated routes.
	api.Get("/shared/:token", ViewSharedProject(d.Services.ShareLinks))

	api.Use(middleware.Auth(d.Auth))

	projects := api.Group("/projects")
	projects.Get("/", ListProjects(d.Services.Projects))
	projects.Post("/", CreateProject(d.Services.Projects))
	projects.Get("/:id", GetProject(d.Services.Projects))
	projects.Put("/:id", UpdateProject(d.Services.Projects, false))
	projects.Patch("/:id", UpdateProject(d.Services.Projects, true))
	projects.Delete("/:id", DeleteProject(d.Services.Projects))
	projects.Post("/:project_id/share", ShareProject(d.Services.ShareLinks, lp))

	files := api.Group("/files")
	files.Get("/", ListFiles(d.Services.Files))
	files.Post("/", UploadFile(d.Services.Files))
	files.Get("/:id", GetFile(d.Services.Files))
	files.Delete("/:id", DeleteFile(d.Services.Files))

	notes := api.Group("/notes")
	notes.Get("/", ListNotes(d.Services.Notes))
	notes.Post("/", CreateNote(d.Services.Notes))
	notes.Get("/:id", GetNote(d.Services.Notes))
	notes.Put("/:id", UpdateNote(d.Services.Notes, false))
	notes.Patch("/:id", UpdateNote(d.Services.Notes, true))
	notes.Delete("/:id", DeleteNote(d.Services.Notes))

	comments := api.Group("/comments")
	comments.Get("/", ListComments(d.Services.Comments))
	comments.Post("/", CreateComment(d.Services.Comments))
	comments.Get("/:id", GetComment(d.Services.Comments))
	comments.Put("/:id", UpdateComment(d.Services.Comments, false))
	comments.Patch("/:id", UpdateComment(d.Services.Comments, true))
	comments.Delete("/:id", DeleteComment(d.Services.Comments))

	reminders := api.Group("/reminders")
	reminders.Get("/", ListReminders(d.Services.Reminders))
	reminders.Post("/", CreateReminder(d.Services.Reminders))
	reminders.Get("/:id", GetReminder(d.Services.Reminders))
	reminders.Put("/:id", UpdateReminder(d.Services.Reminders))
	reminders.Patch("/:id", UpdateReminder(d.Services.Reminders))
	reminders.Delete("/:id", DeleteReminder(d.Services.Reminders))

	shareLinks := api.Group("/share-links")
	shareLinks.Get("/", ListShareLinks(d.Services.ShareLinks, lp))
	shareLinks.Post("/", CreateShareLink(d.Services.ShareLinks, lp))
	shareLinks.Get("/:id", GetShareLink(d.Services.ShareLinks, lp))
	shareLinks.Put("/:id", UpdateShareLink(d.Services.ShareLinks, lp, false))
	shareLinks.Patch("/:id", UpdateShareLink(d.Services.ShareLinks, lp, true))
	shareLinks.Delete("/:id", DeleteShareLink(d.Services.ShareLinks))
}
