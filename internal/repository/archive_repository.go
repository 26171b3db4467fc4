package repository

import (
	"context"

	"ai-laborlaw-be/internal/model"
)

type ConsultationArchiveRepository interface {
	Save(ctx context.Context, archive *model.ConsultationArchive) error
	FindBySessionID(ctx context.Context, sessionID string) (*model.ConsultationArchive, error)
	FindByCategory(ctx context.Context, category string, limit, offset int) ([]model.ConsultationArchive, int64, error)
}
