package share

import (
	"time"

	"github.com/google/uuid"
)

type Share struct {
	ID         uuid.UUID
	FileName   string
	StorageKey string

	MaxDownloads int
	Downloads    int

	ExpiresAt time.Time
	CreatedAt time.Time
}
