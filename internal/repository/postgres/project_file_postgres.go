package postgres

import (
	"context"
	"database/sql"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// ProjectFilePostgres is a PostgreSQL implementation of repository.ProjectFileRepository.
type ProjectFilePostgres struct {
	db *sql.DB
}

// NewProjectFilePostgres creates a new ProjectFilePostgres repository.
func NewProjectFilePostgres(db *sql.DB) *ProjectFilePostgres {
	return &ProjectFilePostgres{db: db}
}

var _ repository.ProjectFileRepository = (*ProjectFilePostgres)(nil)

const fileColumns = `f.id, f.project_id, f.name, f.storage_path, f.size, f.content_type, f.created_at`

func scanFile(row interface{ Scan(...any) error }) (*model.ProjectFile, error) {
	var f model.ProjectFile
	if err := row.Scan(&f.ID, &f.ProjectID, &f.Name, &f.StoragePath, &f.Size, &f.ContentType, &f.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &f, nil
}

// Create inserts attachment metadata and returns the stored record.
func (r *ProjectFilePostgres) Create(ctx context.Context, f *model.ProjectFile) (*model.ProjectFile, error) {
	const q = `
		INSERT INTO project_files AS f (id, project_id, name, storage_path, size, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + fileColumns
	row := r.db.QueryRowContext(ctx, q, f.ID, f.ProjectID, f.Name, f.StoragePath, f.Size, f.ContentType, f.CreatedAt)
	return scanFile(row)
}

// FindByID fetches a single file by its ID.
func (r *ProjectFilePostgres) FindByID(ctx context.Context, id string) (*model.ProjectFile, error) {
	const q = `SELECT ` + fileColumns + ` FROM project_files f WHERE f.id = $1`
	return scanFile(r.db.QueryRowContext(ctx, q, id))
}

// List returns files newest first.
func (r *ProjectFilePostgres) List(ctx context.Context, filter repository.ListFilter, pq repository.PageQuery) (*repository.PageResult[model.ProjectFile], error) {
	where, args := filterClause(filter, "p", "f")
	from := ` FROM project_files f JOIN projects p ON p.id = f.project_id ` + where

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := pageArgs(args, pq)
	rows, err := r.db.QueryContext(ctx, `SELECT `+fileColumns+from+` ORDER BY f.created_at DESC, f.id DESC `+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ProjectFile, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.ProjectFile]{Items: items, Total: total}, nil
}

// Delete removes a file row by ID.
func (r *ProjectFilePostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
