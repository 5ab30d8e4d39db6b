package ports

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"

	"file-share-api/internal/domain/share"
)

type ShareService interface {
	// CreateShare writes a fresh record (downloads = 0) and returns a
	// presigned PUT URL the client uploads the object through.
	CreateShare(ctx context.Context, fileName string, maxDownloads, expiresInHours int) (*share.UploadGrant, error)

	// UploadDirect stores the object server-side and then writes the record.
	UploadDirect(ctx context.Context, fh *multipart.FileHeader, maxDownloads, expiresInHours int) (*share.UploadGrant, error)

	// Info reports link state without consuming a download slot.
	Info(ctx context.Context, id uuid.UUID) (*share.Decision, error)

	// Download runs the access-control state machine for one attempt.
	Download(ctx context.Context, id uuid.UUID) (*share.Decision, error)
}
