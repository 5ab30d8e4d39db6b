package share

import (
	"time"

	domain "file-share-api/internal/domain/share"
)

func ToDownloadResponse(d domain.Decision) DownloadResponse {
	resp := DownloadResponse{
		Status:             string(d.Status),
		Message:            d.Message,
		FileName:           d.FileName,
		DownloadURL:        d.DownloadURL,
		RemainingDownloads: d.Remaining,
		NowISO:             time.Now().UTC().Format(time.RFC3339),
	}
	if !d.ExpiresAt.IsZero() {
		resp.ExpiresAtISO = d.ExpiresAt.UTC().Format(time.RFC3339)
	}

	return resp
}

func ToCreateShareResponse(g domain.UploadGrant) CreateShareResponse {
	return CreateShareResponse{
		FileID:          g.Share.ID.String(),
		UploadURL:       g.UploadURL,
		StorageKey:      g.Share.StorageKey,
		DownloadPageURL: g.PageURL,
	}
}

func ToEventShare(s domain.Share) Share {
	return Share{
		FileID:       s.ID.String(),
		FileName:     s.FileName,
		MaxDownloads: s.MaxDownloads,
		Downloads:    s.Downloads,
		ExpiresAt:    s.ExpiresAt,
	}
}
