package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/infrastructure/database/model"
	"github.com/eslsoft/flashdeck/internal/repository"
)

type reviewLogRepository struct {
	db *gorm.DB
}

// NewReviewLogRepository builds the gorm-backed review log repository.
func NewReviewLogRepository(db *gorm.DB) repository.ReviewLogRepository {
	return &reviewLogRepository{db: db}
}

func (r *reviewLogRepository) Append(ctx context.Context, entry *entity.ReviewLogEntry) (*entity.ReviewLogEntry, error) {
	row := reviewLogToModel(entry)
	row.ID = 0

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return reviewLogFromModel(row)
}

func (r *reviewLogRepository) CountSince(ctx context.Context, deckID int64, since time.Time) (entity.StudyCounts, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&model.ReviewLog{}).
			Where("deck_id = ?", deckID).
			Where("reviewed_at >= ?", since)
	}

	var counts entity.StudyCounts
	if err := base().Where("prev_state = ?", entity.StateNew.String()).Count(&counts.New).Error; err != nil {
		return entity.StudyCounts{}, err
	}
	if err := base().Where("prev_state <> ?", entity.StateNew.String()).Count(&counts.Review).Error; err != nil {
		return entity.StudyCounts{}, err
	}
	return counts, nil
}

func (r *reviewLogRepository) ListByCard(ctx context.Context, cardID int64) ([]entity.ReviewLogEntry, error) {
	var rows []model.ReviewLog
	err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("reviewed_at").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]entity.ReviewLogEntry, 0, len(rows))
	for i := range rows {
		entry, err := reviewLogFromModel(&rows[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}
