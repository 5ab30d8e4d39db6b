package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	domain "file-share-api/internal/domain/share"
	"file-share-api/internal/infrastructure/mq"
	dtoShare "file-share-api/internal/interface/api/rest/dto/share"
)

const reclaimQueueSize = 64

// Reclaimer deletes stored objects of exhausted shares, best-effort. A task
// may be lost on process exit or a full queue; the record stays maxed either
// way, so a leaked object costs storage, never correctness.
type Reclaimer struct {
	s3     ports.ObjectStore
	mq     ports.RabbitMQ
	logger *zap.Logger
	delay  time.Duration
	tasks  chan domain.ReclaimTask
}

func NewReclaimer(
	s3 ports.ObjectStore,
	rbMQ ports.RabbitMQ,
	logger *zap.Logger,
	delay time.Duration,
) ports.Reclaimer {
	return &Reclaimer{
		s3:     s3,
		mq:     rbMQ,
		logger: logger,
		delay:  delay,
		tasks:  make(chan domain.ReclaimTask, reclaimQueueSize),
	}
}

func (r *Reclaimer) Arm(t domain.ReclaimTask) {
	select {
	case r.tasks <- t:
	default:
		// best-effort contract: drop rather than block the download response
		r.logger.Error("reclaim queue full, task dropped",
			zap.String("share_id", t.ShareID.String()),
			zap.String("storage_key", t.StorageKey),
		)
	}
}

func (r *Reclaimer) Worker(ctx context.Context) {
	r.logger.Info("starting reclaimer worker")

	defer func() {
		r.logger.Info("reclaimer worker gracefully stopped")
	}()

	for {
		select {
		case t := <-r.tasks:
			// one goroutine per task so a grace delay never holds up the
			// next exhausted share
			go r.reclaim(ctx, t)
		case <-ctx.Done():
			// in-flight deletions are abandoned, not awaited
			return
		}
	}
}

func (r *Reclaimer) reclaim(ctx context.Context, t domain.ReclaimTask) {
	// grace delay: the final download's presigned URL must stay usable
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return
	}

	if err := r.s3.DeleteObject(ctx, t.StorageKey); err != nil {
		// logged, never retried, never surfaced
		r.logger.Error("reclaim delete failed",
			zap.String("share_id", t.ShareID.String()),
			zap.String("storage_key", t.StorageKey),
			zap.Error(err),
		)
		return
	}

	r.logger.Info("share object reclaimed",
		zap.String("share_id", t.ShareID.String()),
		zap.String("storage_key", t.StorageKey),
	)

	e := mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionShareReclaimed,
		ShareID: t.ShareID.String(),
		Payload: dtoShare.Share{FileID: t.ShareID.String()},
	}
	select {
	case r.mq.GetInputChan() <- e:
	default:
	}
}
