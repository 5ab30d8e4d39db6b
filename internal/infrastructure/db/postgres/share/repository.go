package share

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domain "file-share-api/internal/domain/share"
)

// DB is the slice of pgxpool.Pool the repository needs. Narrowed to one
// method so the conditional-increment contract is testable against pgxmock.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db DB
}

func NewRepository(db DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req *domain.Share) (*domain.Share, error) {
	s := new(Share)

	err := r.db.QueryRow(
		ctx,
		InsertShare,
		req.ID, req.FileName, req.StorageKey, req.MaxDownloads, req.ExpiresAt,
	).Scan(
		&s.ID,
		&s.FileName,
		&s.StorageKey,

		&s.MaxDownloads,
		&s.Downloads,

		&s.ExpiresAt,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(s), nil
}

func (r *Repository) Fetch(ctx context.Context, id uuid.UUID) (*domain.Share, error) {
	s := new(Share)

	err := r.db.QueryRow(ctx, SelectShareByID, id).Scan(
		&s.ID,
		&s.FileName,
		&s.StorageKey,

		&s.MaxDownloads,
		&s.Downloads,

		&s.ExpiresAt,
		&s.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return fromDBModel(s), nil
}

func (r *Repository) TryIncrement(ctx context.Context, id uuid.UUID, now time.Time) (int, error) {
	var n int

	err := r.db.QueryRow(ctx, IncrementDownloads, id, now).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		// Condition failed (or the row is gone); the caller re-reads to
		// tell expired from exhausted from deleted.
		return 0, domain.ErrRejected
	}
	if err != nil {
		return 0, err
	}

	return n, nil
}
