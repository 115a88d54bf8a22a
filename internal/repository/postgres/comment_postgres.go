package postgres

import (
	"context"
	"database/sql"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// CommentPostgres is a PostgreSQL implementation of repository.CommentRepository.
type CommentPostgres struct {
	db *sql.DB
}

// NewCommentPostgres creates a new CommentPostgres repository.
func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CommentRepository = (*CommentPostgres)(nil)

const commentSelect = `
	SELECT c.id, c.project_id, c.user_id, u.name, u.email, c.message, c.created_at, c.updated_at
	FROM comments c
	JOIN users u ON u.id = c.user_id
	JOIN projects p ON p.id = c.project_id`

func scanComment(row interface{ Scan(...any) error }) (*model.Comment, error) {
	var c model.Comment
	if err := row.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.UserName, &c.UserEmail, &c.Message, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

// Create inserts a comment and returns it with the author's details.
func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (id, project_id, user_id, message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, q, c.ID, c.ProjectID, c.UserID, c.Message, c.CreatedAt, c.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return r.FindByID(ctx, c.ID)
}

// FindByID fetches a single comment by its ID.
func (r *CommentPostgres) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	return scanComment(r.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id))
}

// List returns comments newest first.
func (r *CommentPostgres) List(ctx context.Context, filter repository.ListFilter, pq repository.PageQuery) (*repository.PageResult[model.Comment], error) {
	where, args := filterClause(filter, "p", "c")

	var total int
	qCount := `SELECT COUNT(*) FROM comments c JOIN projects p ON p.id = c.project_id ` + where
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := pageArgs(args, pq)
	rows, err := r.db.QueryContext(ctx, commentSelect+` `+where+` ORDER BY c.created_at DESC, c.id DESC `+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Comment]{Items: items, Total: total}, nil
}

// Update rewrites the comment message.
func (r *CommentPostgres) Update(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET message = $2, updated_at = $3 WHERE id = $1`, c.ID, c.Message, c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, c.ID)
}

// Delete removes a comment by ID.
func (r *CommentPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
