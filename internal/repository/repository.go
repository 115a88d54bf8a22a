// Package repository defines data access for every project resource using SQL queries only.
// Implementations live in subpackages (e.g., postgres). No business logic here.
package repository

import (
	"context"
	"errors"
	"time"

	"projectapi/internal/model"
)

// ErrNotFound is returned by lookups and conditional writes that match no row.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write violates a uniqueness constraint.
var ErrConflict = errors.New("record conflicts with an existing row")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// ListFilter scopes listings of project sub-resources.
// OwnerID restricts to projects created by that user; ProjectID, when set, to one project.
type ListFilter struct {
	OwnerID   string
	ProjectID string
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// ProjectRepository persists projects. Delete cascades to every child table.
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) (*model.Project, error)
	FindByID(ctx context.Context, id string) (*model.Project, error)
	ListByOwner(ctx context.Context, ownerID string, pq PageQuery) (*PageResult[model.Project], error)
	Update(ctx context.Context, p *model.Project) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectFileRepository persists attachment metadata.
type ProjectFileRepository interface {
	Create(ctx context.Context, f *model.ProjectFile) (*model.ProjectFile, error)
	FindByID(ctx context.Context, id string) (*model.ProjectFile, error)
	List(ctx context.Context, f ListFilter, pq PageQuery) (*PageResult[model.ProjectFile], error)
	Delete(ctx context.Context, id string) error
}

// NoteRepository persists project notes.
type NoteRepository interface {
	Create(ctx context.Context, n *model.ProjectNote) (*model.ProjectNote, error)
	FindByID(ctx context.Context, id string) (*model.ProjectNote, error)
	List(ctx context.Context, f ListFilter, pq PageQuery) (*PageResult[model.ProjectNote], error)
	Update(ctx context.Context, n *model.ProjectNote) (*model.ProjectNote, error)
	Delete(ctx context.Context, id string) error
}

// CommentRepository persists comments. Reads join the author's name and email.
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	List(ctx context.Context, f ListFilter, pq PageQuery) (*PageResult[model.Comment], error)
	Update(ctx context.Context, c *model.Comment) (*model.Comment, error)
	Delete(ctx context.Context, id string) error
}

// ReminderRepository persists reminders. Reads join project and author names.
type ReminderRepository interface {
	Create(ctx context.Context, r *model.Reminder) (*model.Reminder, error)
	FindByID(ctx context.Context, id string) (*model.Reminder, error)
	List(ctx context.Context, f ListFilter, pq PageQuery) (*PageResult[model.Reminder], error)
	Update(ctx context.Context, r *model.Reminder) (*model.Reminder, error)
	// UpdateStatus sets status to "to" only if it is still "from". It reports whether a row changed.
	UpdateStatus(ctx context.Context, id string, from, to model.ReminderStatus) (bool, error)
	// RefreshStatuses recomputes pending and due_soon reminders against now in one statement
	// and returns the number of rows changed.
	RefreshStatuses(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
}

// ShareLinkRepository persists share links. Reads join project and creator names.
type ShareLinkRepository interface {
	// FindActiveByProject returns the project's active link or ErrNotFound.
	FindActiveByProject(ctx context.Context, projectID string) (*model.ShareLink, error)
	// CreateActive inserts l as the project's active link. If another active link
	// already exists the insert is skipped and created is false.
	CreateActive(ctx context.Context, l *model.ShareLink) (created bool, err error)
	FindByID(ctx context.Context, id string) (*model.ShareLink, error)
	FindActiveByToken(ctx context.Context, token string) (*model.ShareLink, error)
	List(ctx context.Context, f ListFilter, pq PageQuery) (*PageResult[model.ShareLink], error)
	// SetActive toggles is_active. Activating while another link is active returns ErrConflict.
	SetActive(ctx context.Context, id string, active bool) (*model.ShareLink, error)
	Delete(ctx context.Context, id string) error
}
