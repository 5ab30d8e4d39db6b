package share

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound reports that no record exists for the id.
	ErrNotFound = errors.New("share not found")

	// ErrRejected reports that the conditional increment found the record
	// expired or exhausted at commit time. It does not say which; callers
	// re-read the record to resolve the reason.
	ErrRejected = errors.New("share increment rejected")
)

type Repository interface {
	Create(ctx context.Context, s *Share) (*Share, error)
	Fetch(ctx context.Context, id uuid.UUID) (*Share, error)

	// TryIncrement bumps Downloads by one iff downloads < max_downloads and
	// now < expires_at hold against the stored state, in a single store-side
	// operation, and returns the new count. This is the only quota
	// enforcement point; any read-then-write would race under concurrency.
	TryIncrement(ctx context.Context, id uuid.UUID, now time.Time) (int, error)
}
