package implementation

import (
	"context"
	"errors"

	"ai-laborlaw-be/internal/model"
	"ai-laborlaw-be/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConsultationArchiveRepositoryImpl struct {
	db *gorm.DB
}

func NewConsultationArchiveRepository(db *gorm.DB) repository.ConsultationArchiveRepository {
	return &ConsultationArchiveRepositoryImpl{db: db}
}

func (r *ConsultationArchiveRepositoryImpl) Save(ctx context.Context, archive *model.ConsultationArchive) error {
	// A session may be archived again if the consumer retries, so upsert on
	// the session id.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).
		Create(archive).Error
}

func (r *ConsultationArchiveRepositoryImpl) FindBySessionID(ctx context.Context, sessionID string) (*model.ConsultationArchive, error) {
	var archive model.ConsultationArchive
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&archive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &archive, nil
}

func (r *ConsultationArchiveRepositoryImpl) FindByCategory(ctx context.Context, category string, limit, offset int) ([]model.ConsultationArchive, int64, error) {
	var archives []model.ConsultationArchive
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ConsultationArchive{})
	if category != "" {
		db = db.Where("dispute_category = ?", category)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&archives).Error

	return archives, total, err
}
