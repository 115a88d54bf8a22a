package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectapi/internal/model"
	"projectapi/internal/repository"
)

var projectCols = []string{"id", "name", "description", "start_date", "end_date", "created_by", "created_at", "updated_at"}

func TestProjectPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProjectPostgres(db)
	now := time.Now().UTC()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &model.Project{ID: "proj-1", Name: "Roof", StartDate: &start, CreatedBy: "user-1", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO projects").
		WithArgs(p.ID, p.Name, nil, start, nil, p.CreatedBy, now, now).
		WillReturnRows(sqlmock.NewRows(projectCols).AddRow(p.ID, p.Name, nil, start, nil, p.CreatedBy, now, now))

	got, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
	require.NotNil(t, got.StartDate)
	assert.True(t, start.Equal(*got.StartDate))
	assert.Nil(t, got.EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProjectPostgres(db)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id = \\$1").
			WithArgs("proj-1").
			WillReturnRows(sqlmock.NewRows(projectCols).AddRow("proj-1", "Roof", "desc", nil, nil, "user-1", time.Now(), time.Now()))

		p, err := repo.FindByID(context.Background(), "proj-1")
		require.NoError(t, err)
		require.NotNil(t, p.Description)
		assert.Equal(t, "desc", *p.Description)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM projects WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(projectCols))

		p, err := repo.FindByID(context.Background(), "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, p)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProjectPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM projects WHERE created_by = \\$1").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM projects WHERE created_by = \\$1 ORDER BY").
		WithArgs("user-1", 10, 0).
		WillReturnRows(sqlmock.NewRows(projectCols).AddRow("proj-1", "Roof", nil, nil, nil, "user-1", time.Now(), time.Now()))

	res, err := repo.ListByOwner(context.Background(), "user-1", repository.PageQuery{Limit: 10, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProjectPostgres(db)

	mock.ExpectExec("DELETE FROM projects WHERE id = \\$1").
		WithArgs("proj-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(context.Background(), "proj-1"))

	mock.ExpectExec("DELETE FROM projects WHERE id = \\$1").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "gone"), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
