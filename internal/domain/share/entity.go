package share

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Share is the durable access policy of one sharing link. The UUID is
	// the only credential a downloader holds; everything except Downloads
	// is immutable after creation.
	Share struct {
		ID           uuid.UUID
		FileName     string
		StorageKey   string
		MaxDownloads int
		Downloads    int
		ExpiresAt    time.Time
		CreatedAt    time.Time
	}

	// UploadGrant is what the upload path hands back: the fresh record plus
	// a presigned URL the client PUTs the object to.
	UploadGrant struct {
		Share     *Share
		UploadURL string
		PageURL   string
	}

	// ReclaimTask asks the reclaimer to delete the stored object of an
	// exhausted share after the grace delay.
	ReclaimTask struct {
		ShareID    uuid.UUID
		StorageKey string
	}
)

func (s *Share) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Share) Exhausted() bool {
	return s.Downloads >= s.MaxDownloads
}

func (s *Share) Remaining() int {
	if r := s.MaxDownloads - s.Downloads; r > 0 {
		return r
	}
	return 0
}
