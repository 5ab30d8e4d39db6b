package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "file-share-api/internal/domain/share"
)

var shareColumns = []string{
	"id", "file_name", "storage_key", "max_downloads", "downloads", "expires_at", "created_at",
}

func TestRepository_TryIncrement(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	t.Run("condition holds, returns new count", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE shares").
			WithArgs(id, now).
			WillReturnRows(pgxmock.NewRows([]string{"downloads"}).AddRow(2))

		repo := NewRepository(mock)
		n, err := repo.TryIncrement(context.Background(), id, now)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("condition fails, rejected without mutation", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		// exhausted or expired: the conditional UPDATE touches no row
		mock.ExpectQuery("UPDATE shares").
			WithArgs(id, now).
			WillReturnError(pgx.ErrNoRows)

		repo := NewRepository(mock)
		_, err = repo.TryIncrement(context.Background(), id, now)
		assert.ErrorIs(t, err, domain.ErrRejected)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("infra error passes through", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		boom := errors.New("connection refused")
		mock.ExpectQuery("UPDATE shares").
			WithArgs(id, now).
			WillReturnError(boom)

		repo := NewRepository(mock)
		_, err = repo.TryIncrement(context.Background(), id, now)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, domain.ErrRejected)
	})
}

func TestRepository_Fetch(t *testing.T) {
	id := uuid.New()
	expiresAt := time.Now().UTC().Add(time.Hour)
	createdAt := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, file_name, storage_key").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(shareColumns).
				AddRow(id, "report.pdf", "uploads/"+id.String()+"/report.pdf", 3, 1, expiresAt, createdAt))

		repo := NewRepository(mock)
		s, err := repo.Fetch(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, s.ID)
		assert.Equal(t, "report.pdf", s.FileName)
		assert.Equal(t, 3, s.MaxDownloads)
		assert.Equal(t, 1, s.Downloads)
		assert.Equal(t, expiresAt, s.ExpiresAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id, file_name, storage_key").
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		repo := NewRepository(mock)
		_, err = repo.Fetch(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	id := uuid.New()
	expiresAt := time.Now().UTC().Add(24 * time.Hour)
	createdAt := time.Now().UTC()
	key := "uploads/" + id.String() + "/notes.txt"

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO shares").
		WithArgs(id, "notes.txt", key, 2, expiresAt).
		WillReturnRows(pgxmock.NewRows(shareColumns).
			AddRow(id, "notes.txt", key, 2, 0, expiresAt, createdAt))

	repo := NewRepository(mock)
	s, err := repo.Create(context.Background(), &domain.Share{
		ID:           id,
		FileName:     "notes.txt",
		StorageKey:   key,
		MaxDownloads: 2,
		ExpiresAt:    expiresAt,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Downloads, "fresh record starts with zero usage")
	assert.Equal(t, createdAt, s.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
