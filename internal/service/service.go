// Package service holds the use cases of the project API. Every operation on a
// project or one of its sub-resources is checked against project ownership
// before anything is written.
package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

const (
	defaultLimit = 10
	maxLimit     = 100
	maxNameLen   = 255
)

// ListResult is the service-level DTO for paginated listings.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

func pageQuery(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

// guard resolves projects and enforces that the requester created them.
type guard struct {
	projects repository.ProjectRepository
}

// owned loads the project and checks that requester created it.
func (g guard) owned(ctx context.Context, requester, projectID string) (*model.Project, error) {
	if projectID == "" {
		return nil, ErrIDRequired
	}
	p, err := g.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, translate(err)
	}
	if !p.OwnedBy(requester) {
		return nil, ErrPermissionDenied
	}
	return p, nil
}

// scope builds the listing filter. Without a project only the requester's
// projects are visible; with one the requester must own it.
func (g guard) scope(ctx context.Context, requester, projectID string) (repository.ListFilter, error) {
	f := repository.ListFilter{OwnerID: requester}
	if projectID == "" {
		return f, nil
	}
	if _, err := g.owned(ctx, requester, projectID); err != nil {
		return f, err
	}
	f.ProjectID = projectID
	return f, nil
}

// requireProject validates the project reference of a create request and checks ownership.
func (g guard) requireProject(ctx context.Context, requester, projectID string) (*model.Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, invalid("project", "This field is required.")
	}
	return g.owned(ctx, requester, projectID)
}

func checkTitle(fe fieldErrors, field, v string) string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		fe.add(field, "This field may not be blank.")
	case utf8.RuneCountInString(v) > maxNameLen:
		fe.add(field, "Ensure this field has no more than 255 characters.")
	}
	return v
}
