package postgres

import (
	"context"
	"database/sql"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// ShareLinkPostgres is a PostgreSQL implementation of repository.ShareLinkRepository.
type ShareLinkPostgres struct {
	db *sql.DB
}

// NewShareLinkPostgres creates a new ShareLinkPostgres repository.
func NewShareLinkPostgres(db *sql.DB) *ShareLinkPostgres {
	return &ShareLinkPostgres{db: db}
}

var _ repository.ShareLinkRepository = (*ShareLinkPostgres)(nil)

const shareLinkSelect = `
	SELECT s.id, s.project_id, p.name, s.token, s.is_active, s.created_by, COALESCE(u.name, ''), s.created_at
	FROM share_links s
	JOIN projects p ON p.id = s.project_id
	LEFT JOIN users u ON u.id = s.created_by`

func scanShareLink(row interface{ Scan(...any) error }) (*model.ShareLink, error) {
	var (
		l         model.ShareLink
		createdBy sql.NullString
	)
	if err := row.Scan(&l.ID, &l.ProjectID, &l.ProjectName, &l.Token, &l.IsActive, &createdBy, &l.CreatedByName, &l.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	l.CreatedBy = stringPtr(createdBy)
	return &l, nil
}

// FindActiveByProject returns the project's active link.
func (r *ShareLinkPostgres) FindActiveByProject(ctx context.Context, projectID string) (*model.ShareLink, error) {
	return scanShareLink(r.db.QueryRowContext(ctx, shareLinkSelect+` WHERE s.project_id = $1 AND s.is_active`, projectID))
}

// CreateActive inserts an active link unless the project already has one.
// The partial unique index on (project_id) WHERE is_active arbitrates concurrent creators.
func (r *ShareLinkPostgres) CreateActive(ctx context.Context, l *model.ShareLink) (bool, error) {
	const q = `
		INSERT INTO share_links (id, project_id, token, is_active, created_by, created_at)
		VALUES ($1, $2, $3, TRUE, $4, $5)
		ON CONFLICT (project_id) WHERE is_active DO NOTHING`
	res, err := r.db.ExecContext(ctx, q, l.ID, l.ProjectID, l.Token, nullString(l.CreatedBy), l.CreatedAt)
	if err != nil {
		return false, mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// FindByID fetches a single link by its ID.
func (r *ShareLinkPostgres) FindByID(ctx context.Context, id string) (*model.ShareLink, error) {
	return scanShareLink(r.db.QueryRowContext(ctx, shareLinkSelect+` WHERE s.id = $1`, id))
}

// FindActiveByToken resolves a public token. Inactive links are not found.
func (r *ShareLinkPostgres) FindActiveByToken(ctx context.Context, token string) (*model.ShareLink, error) {
	return scanShareLink(r.db.QueryRowContext(ctx, shareLinkSelect+` WHERE s.token = $1 AND s.is_active`, token))
}

// List returns links newest first.
func (r *ShareLinkPostgres) List(ctx context.Context, filter repository.ListFilter, pq repository.PageQuery) (*repository.PageResult[model.ShareLink], error) {
	where, args := filterClause(filter, "p", "s")

	var total int
	qCount := `SELECT COUNT(*) FROM share_links s JOIN projects p ON p.id = s.project_id ` + where
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := pageArgs(args, pq)
	rows, err := r.db.QueryContext(ctx, shareLinkSelect+` `+where+` ORDER BY s.created_at DESC, s.id DESC `+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ShareLink, 0)
	for rows.Next() {
		l, err := scanShareLink(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.ShareLink]{Items: items, Total: total}, nil
}

// SetActive toggles is_active and returns the updated link.
func (r *ShareLinkPostgres) SetActive(ctx context.Context, id string, active bool) (*model.ShareLink, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE share_links SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return nil, mapErr(err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes a link by ID.
func (r *ShareLinkPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM share_links WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
