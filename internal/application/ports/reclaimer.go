package ports

import (
	"context"

	"file-share-api/internal/domain/share"
)

type Reclaimer interface {
	// Arm schedules best-effort deletion of the stored object; it never
	// blocks the caller, even with a full queue.
	Arm(t share.ReclaimTask)
	Worker(ctx context.Context)
}
