package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "file-share-api/internal/domain/share"
)

func newTestReclaimer(store *fakeObjectStore, delay time.Duration) *Reclaimer {
	r := NewReclaimer(store, newFakeMQ(), zap.NewNop(), delay)
	return r.(*Reclaimer)
}

func TestReclaimer_DeletesAfterGraceDelay(t *testing.T) {
	store := newFakeObjectStore()
	key := "uploads/x/doomed.bin"
	require.NoError(t, store.PutObject(context.Background(), key, strings.NewReader("x"), "application/octet-stream"))

	rec := newTestReclaimer(store, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rec.Worker(ctx)

	rec.Arm(domain.ReclaimTask{ShareID: uuid.New(), StorageKey: key})

	require.Eventually(t, func() bool {
		exists, err := store.ObjectExists(context.Background(), key)
		return err == nil && !exists
	}, time.Second, 5*time.Millisecond)
}

func TestReclaimer_AbsentObjectIsNotAnError(t *testing.T) {
	store := newFakeObjectStore()
	rec := newTestReclaimer(store, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rec.Worker(ctx)

	// the object was never stored (or a previous run already removed it)
	task := domain.ReclaimTask{ShareID: uuid.New(), StorageKey: "uploads/x/already-gone.bin"}
	rec.Arm(task)
	rec.Arm(task)

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.deleted) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestReclaimer_CancelledBeforeDelaySkipsDelete(t *testing.T) {
	store := newFakeObjectStore()
	key := "uploads/x/survivor.bin"
	require.NoError(t, store.PutObject(context.Background(), key, strings.NewReader("x"), "application/octet-stream"))

	rec := newTestReclaimer(store, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go rec.Worker(ctx)

	rec.Arm(domain.ReclaimTask{ShareID: uuid.New(), StorageKey: key})
	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	exists, err := store.ObjectExists(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, exists, "shutdown abandons pending reclamations, it never rushes them")
}

func TestReclaimer_ArmNeverBlocksOnFullQueue(t *testing.T) {
	store := newFakeObjectStore()
	rec := &Reclaimer{
		s3:     store,
		mq:     newFakeMQ(),
		logger: zap.NewNop(),
		delay:  time.Hour,
		tasks:  make(chan domain.ReclaimTask, 1),
	}

	// no worker running; first fills the buffer, the rest must drop
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			rec.Arm(domain.ReclaimTask{ShareID: uuid.New(), StorageKey: "uploads/x/f.bin"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Arm blocked on a full queue")
	}
}
