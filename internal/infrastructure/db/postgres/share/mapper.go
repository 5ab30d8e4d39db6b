package share

import (
	domain "file-share-api/internal/domain/share"
)

func fromDBModel(model *Share) *domain.Share {
	return &domain.Share{
		ID:         model.ID,
		FileName:   model.FileName,
		StorageKey: model.StorageKey,

		MaxDownloads: model.MaxDownloads,
		Downloads:    model.Downloads,

		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
	}
}
