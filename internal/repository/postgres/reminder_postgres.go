package postgres

import (
	"context"
	"database/sql"
	"time"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

// ReminderPostgres is a PostgreSQL implementation of repository.ReminderRepository.
type ReminderPostgres struct {
	db *sql.DB
}

// NewReminderPostgres creates a new ReminderPostgres repository.
func NewReminderPostgres(db *sql.DB) *ReminderPostgres {
	return &ReminderPostgres{db: db}
}

var _ repository.ReminderRepository = (*ReminderPostgres)(nil)

const reminderSelect = `
	SELECT r.id, r.project_id, p.name, r.title, r.reminder_datetime, r.status,
	       r.created_by, u.name, r.created_at, r.updated_at
	FROM reminders r
	JOIN projects p ON p.id = r.project_id
	JOIN users u ON u.id = r.created_by`

func scanReminder(row interface{ Scan(...any) error }) (*model.Reminder, error) {
	var r model.Reminder
	if err := row.Scan(
		&r.ID,
		&r.ProjectID,
		&r.ProjectName,
		&r.Title,
		&r.ReminderDatetime,
		&r.Status,
		&r.CreatedBy,
		&r.CreatedByName,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

// Create inserts a reminder and returns it with project and author names.
func (r *ReminderPostgres) Create(ctx context.Context, rem *model.Reminder) (*model.Reminder, error) {
	const q = `
		INSERT INTO reminders (id, project_id, title, reminder_datetime, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, q,
		rem.ID,
		rem.ProjectID,
		rem.Title,
		rem.ReminderDatetime,
		rem.Status,
		rem.CreatedBy,
		rem.CreatedAt,
		rem.UpdatedAt,
	); err != nil {
		return nil, mapErr(err)
	}
	return r.FindByID(ctx, rem.ID)
}

// FindByID fetches a single reminder by its ID.
func (r *ReminderPostgres) FindByID(ctx context.Context, id string) (*model.Reminder, error) {
	return scanReminder(r.db.QueryRowContext(ctx, reminderSelect+` WHERE r.id = $1`, id))
}

// List returns reminders ordered by due time, soonest first.
func (r *ReminderPostgres) List(ctx context.Context, filter repository.ListFilter, pq repository.PageQuery) (*repository.PageResult[model.Reminder], error) {
	where, args := filterClause(filter, "p", "r")

	var total int
	qCount := `SELECT COUNT(*) FROM reminders r JOIN projects p ON p.id = r.project_id ` + where
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	limit, args := pageArgs(args, pq)
	rows, err := r.db.QueryContext(ctx, reminderSelect+` `+where+` ORDER BY r.reminder_datetime ASC, r.id ASC `+limit, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Reminder]{Items: items, Total: total}, nil
}

// Update writes title, due time and status.
func (r *ReminderPostgres) Update(ctx context.Context, rem *model.Reminder) (*model.Reminder, error) {
	const q = `
		UPDATE reminders
		SET title = $2, reminder_datetime = $3, status = $4, updated_at = $5
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, rem.ID, rem.Title, rem.ReminderDatetime, rem.Status, rem.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, rem.ID)
}

// UpdateStatus is a compare-and-set on the status column.
func (r *ReminderPostgres) UpdateStatus(ctx context.Context, id string, from, to model.ReminderStatus) (bool, error) {
	const q = `UPDATE reminders SET status = $3 WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, q, id, from, to)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RefreshStatuses applies the due-time rule to every pending and due_soon reminder.
func (r *ReminderPostgres) RefreshStatuses(ctx context.Context, now time.Time) (int64, error) {
	const computed = `CASE
			WHEN reminder_datetime < $1 THEN 'overdue'
			WHEN reminder_datetime <= $2 THEN 'due_soon'
			ELSE 'pending'
		END`
	const q = `
		UPDATE reminders
		SET status = ` + computed + `
		WHERE status IN ('pending', 'due_soon')
		  AND status <> ` + computed
	res, err := r.db.ExecContext(ctx, q, now, now.Add(model.DueSoonWindow))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a reminder by ID.
func (r *ReminderPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
