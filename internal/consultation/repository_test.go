package consultation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowColumns = []string{"id", "user_id", "kind", "occasion", "preferences", "image_path", "advice", "created_at"}

func setupMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })
	return NewRepository(sqlxDB), mock
}

func TestCreate(t *testing.T) {
	repo, mock := setupMock(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO consultations (user_id, kind, occasion, preferences, image_path, advice) VALUES (?, ?, ?, ?, ?, ?) RETURNING id, created_at")).
		WithArgs(int64(3), KindSingle, "свидание", "минимализм", "uploads/ab.jpg", "Отличный образ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, now))

	c := &Consultation{UserID: 3, Occasion: "свидание", Preferences: "минимализм", ImagePath: "uploads/ab.jpg", Advice: "Отличный образ"}
	require.NoError(t, repo.Create(context.Background(), c))

	assert.Equal(t, int64(11), c.ID)
	assert.Equal(t, KindSingle, c.Kind)
	assert.Equal(t, now, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_ScopedToOwner(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM consultations WHERE id = ? AND user_id = ?")).
		WithArgs(int64(11), int64(4)).
		WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err := repo.GetByID(context.Background(), 11, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByUser_DefaultLimit(t *testing.T) {
	repo, mock := setupMock(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM consultations WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?")).
		WithArgs(int64(3), 20).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(2, 3, KindCompare, "офис", "", "", "Второй вариант лучше", now).
			AddRow(1, 3, KindSingle, "офис", "", "", "Хорошо", now))

	list, err := repo.ListByUser(context.Background(), 3, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, KindCompare, list[0].Kind)
}

func TestCounts(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM consultations")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM consultations WHERE created_at >= ?")).
		WithArgs("2025-05-01 00:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)

	daily, err := repo.CountSince(context.Background(), time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(4), daily)
}
