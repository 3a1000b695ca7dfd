// Package repository implements the domain repositories on top of gorm.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/infrastructure/database/model"
	"github.com/eslsoft/flashdeck/internal/repository"
)

type deckRepository struct {
	db *gorm.DB
}

// NewDeckRepository builds the gorm-backed deck repository.
func NewDeckRepository(db *gorm.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(ctx context.Context, deck *entity.Deck) (*entity.Deck, error) {
	row, err := deckToModel(deck)
	if err != nil {
		return nil, err
	}
	row.ID = 0

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrDeckNameTaken
		}
		return nil, err
	}
	return deckFromModel(row)
}

func (r *deckRepository) Update(ctx context.Context, deck *entity.Deck) (*entity.Deck, error) {
	row, err := deckToModel(deck)
	if err != nil {
		return nil, err
	}

	// Save with a full model writes every column, including cleared override
	// pointers.
	result := r.db.WithContext(ctx).Model(&model.Deck{}).
		Where("id = ?", row.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, entity.ErrDeckNameTaken
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, entity.ErrDeckNotFound
	}
	return r.GetByID(ctx, row.ID)
}

func (r *deckRepository) GetByID(ctx context.Context, id int64) (*entity.Deck, error) {
	var row model.Deck
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrDeckNotFound
		}
		return nil, err
	}
	return deckFromModel(&row)
}

func (r *deckRepository) List(ctx context.Context, query *repository.ListDeckQuery) ([]entity.Deck, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Deck{}).Where("user_id = ?", query.UserID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = tx.Order("created_at").Order("id")
	if query.PageSize > 0 {
		tx = tx.Offset(int(query.Offset())).Limit(int(query.PageSize))
	}

	var rows []model.Deck
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	decks := make([]entity.Deck, 0, len(rows))
	for i := range rows {
		deck, err := deckFromModel(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		decks = append(decks, *deck)
	}
	return decks, total, nil
}

func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Deck{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return entity.ErrDeckNotFound
		}
		if err := tx.Where("deck_id = ?", id).Delete(&model.Card{}).Error; err != nil {
			return err
		}
		return tx.Where("deck_id = ?", id).Delete(&model.ReviewLog{}).Error
	})
}
