package validator

import (
	"strings"

	"github.com/google/uuid"

	"file-share-api/internal/interface/api/rest/dto/share"
)

// Quota/expiry bounds. Anything outside is rejected before a record exists.
const (
	MinDownloads   = 1
	MaxDownloads   = 5
	MinExpiryHours = 1
	MaxExpiryHours = 72
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateCreateShare(r share.CreateShareRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.FileName) == "" {
		errs["filename"] = "filename is required"
	}
	for k, v := range ValidateShareLimits(r.MaxDownloads, r.ExpiresInHours) {
		errs[k] = v
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateShareLimits(maxDownloads, expiresInHours int) map[string]string {
	errs := make(map[string]string)

	if maxDownloads < MinDownloads || maxDownloads > MaxDownloads {
		errs["max_downloads"] = "max_downloads must be between 1 and 5"
	}
	if expiresInHours < MinExpiryHours || expiresInHours > MaxExpiryHours {
		errs["expires_in_hours"] = "expires_in_hours must be between 1 and 72"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
