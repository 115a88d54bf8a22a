package postgres

import (
	"context"
	"database/sql"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

const noteColumns = `n.id, n.project_id, n.content, n.created_at, n.updated_at`

func scanNote(row interface{ Scan(...any) error }) (*model.ProjectNote, error) {
	var n model.ProjectNote
	if err := row.Scan(&n.ID, &n.ProjectID, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

// Create inserts a note and returns the stored record.
func (r *NotePostgres) Create(ctx context.Context, n *model.ProjectNote) (*model.ProjectNote, error) {
	const q = `
		INSERT INTO project_notes AS n (id, project_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRowContext(ctx, q, n.ID, n.ProjectID, n.Content, n.CreatedAt, n.UpdatedAt))
}

// FindByID fetches a single note by its ID.
func (r *NotePostgres) FindByID(ctx context.Context, id string) (*model.ProjectNote, error) {
	const q = `SELECT ` + noteColumns + ` FROM project_notes n WHERE n.id = $1`
	return scanNote(r.db.QueryRowContext(ctx, q, id))
}

// List returns notes newest first.
func (r *NotePostgres) List(ctx context.Context, filter repository.ListFilter, pq repository.PageQuery) (*repository.PageResult[model.ProjectNote], error) {
	where, args := filterClause(filter, "p", "n")
	from := ` FROM project_notes n JOIN projects p ON p.id = n.project_id ` + where

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := pageArgs(args, pq)
	rows, err := r.db.QueryContext(ctx, `SELECT `+noteColumns+from+` ORDER BY n.created_at DESC, n.id DESC `+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ProjectNote, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.ProjectNote]{Items: items, Total: total}, nil
}

// Update rewrites the note content.
func (r *NotePostgres) Update(ctx context.Context, n *model.ProjectNote) (*model.ProjectNote, error) {
	const q = `
		UPDATE project_notes AS n SET content = $2, updated_at = $3
		WHERE n.id = $1
		RETURNING ` + noteColumns
	return scanNote(r.db.QueryRowContext(ctx, q, n.ID, n.Content, n.UpdatedAt))
}

// Delete removes a note by ID.
func (r *NotePostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
