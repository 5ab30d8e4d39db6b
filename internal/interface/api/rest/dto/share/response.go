package share

import "time"

type (
	CreateShareResponse struct {
		FileID          string `json:"file_id"`
		UploadURL       string `json:"upload_url"`
		StorageKey      string `json:"s3_key"`
		DownloadPageURL string `json:"download_page_url"`
	}

	DirectUploadResponse struct {
		FileID          string `json:"file_id"`
		DownloadPageURL string `json:"download_page_url"`
		Message         string `json:"message"`
	}

	// DownloadResponse doubles as the info-endpoint body; download_url is
	// only ever set on status "ok" from the download endpoint.
	DownloadResponse struct {
		Status             string `json:"status"`
		Message            string `json:"message,omitempty"`
		FileName           string `json:"filename,omitempty"`
		DownloadURL        string `json:"download_url,omitempty"`
		RemainingDownloads *int   `json:"remaining_downloads,omitempty"`
		ExpiresAtISO       string `json:"expires_at_iso,omitempty"`
		NowISO             string `json:"now_iso"`
	}

	// Share is the event-payload view published to the broker.
	Share struct {
		FileID       string    `json:"file_id"`
		FileName     string    `json:"file_name"`
		MaxDownloads int       `json:"max_downloads"`
		Downloads    int       `json:"downloads"`
		ExpiresAt    time.Time `json:"expires_at"`
	}
)
