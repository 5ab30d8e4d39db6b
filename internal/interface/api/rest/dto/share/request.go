package share

type CreateShareRequest struct {
	FileName       string `json:"filename"`
	MaxDownloads   int    `json:"max_downloads"`
	ExpiresInHours int    `json:"expires_in_hours"`
}
