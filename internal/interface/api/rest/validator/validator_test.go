package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"file-share-api/internal/interface/api/rest/dto/share"
)

func TestIsUUID(t *testing.T) {
	id := uuid.New()

	ok, parsed := IsUUID(id.String())
	assert.True(t, ok)
	assert.Equal(t, id, parsed)

	ok, _ = IsUUID("not-a-uuid")
	assert.False(t, ok)

	ok, _ = IsUUID("")
	assert.False(t, ok)
}

func TestValidateShareLimits(t *testing.T) {
	tests := []struct {
		name           string
		maxDownloads   int
		expiresInHours int
		wantFields     []string
	}{
		{"both at lower bound", 1, 1, nil},
		{"both at upper bound", 5, 72, nil},
		{"downloads below range", 0, 24, []string{"max_downloads"}},
		{"downloads above range", 6, 24, []string{"max_downloads"}},
		{"expiry below range", 3, 0, []string{"expires_in_hours"}},
		{"expiry above range", 3, 73, []string{"expires_in_hours"}},
		{"both out of range", 0, 100, []string{"max_downloads", "expires_in_hours"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateShareLimits(tt.maxDownloads, tt.expiresInHours)
			if tt.wantFields == nil {
				assert.Nil(t, errs)
				return
			}
			assert.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestValidateCreateShare(t *testing.T) {
	valid := share.CreateShareRequest{
		FileName:       "report.pdf",
		MaxDownloads:   3,
		ExpiresInHours: 24,
	}
	assert.Nil(t, ValidateCreateShare(valid))

	blank := valid
	blank.FileName = "   "
	errs := ValidateCreateShare(blank)
	assert.Contains(t, errs, "filename")

	// filename and limit failures report together, not first-wins
	bad := share.CreateShareRequest{FileName: "", MaxDownloads: 0, ExpiresInHours: 0}
	errs = ValidateCreateShare(bad)
	assert.Len(t, errs, 3)
}
