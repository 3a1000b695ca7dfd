package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/eslsoft/flashdeck/internal/entity"
	"github.com/eslsoft/flashdeck/internal/infrastructure/database/model"
	"github.com/eslsoft/flashdeck/internal/repository"
	"github.com/eslsoft/flashdeck/pkg/filterexpr"
)

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository builds the gorm-backed card repository.
func NewCardRepository(db *gorm.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

// columnPrefix returns the column prefix for one direction's schedule.
func columnPrefix(dir entity.Direction) string {
	if dir == entity.DirectionReverse {
		return "reverse_"
	}
	return "forward_"
}

func (r *cardRepository) Create(ctx context.Context, card *entity.Card) (*entity.Card, error) {
	row, err := cardToModel(card)
	if err != nil {
		return nil, err
	}
	row.ID = 0

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return cardFromModel(row)
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*entity.Card, error) {
	var row model.Card
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrCardNotFound
		}
		return nil, err
	}
	return cardFromModel(&row)
}

func (r *cardRepository) List(ctx context.Context, query *repository.ListCardQuery) ([]entity.Card, int64, error) {
	parsed, err := filterexpr.Parse(query.GetFilter(), query.GetOrderBy(), listCardsSchema)
	if err != nil {
		return nil, 0, err
	}

	tx := r.db.WithContext(ctx).Model(&model.Card{}).Where("deck_id = ?", query.DeckID)
	tx, err = applyConditions(tx, parsed.Conditions)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, ord := range parsed.Order {
		clause := ord.Column
		if ord.Desc {
			clause += " DESC"
		}
		tx = tx.Order(clause)
	}
	if query.PageSize > 0 {
		tx = tx.Offset(int(query.Offset())).Limit(int(query.PageSize))
	}

	var rows []model.Card
	if err := tx.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	cards := make([]entity.Card, 0, len(rows))
	for i := range rows {
		card, err := cardFromModel(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		cards = append(cards, *card)
	}
	return cards, total, nil
}

func applyConditions(tx *gorm.DB, conditions []filterexpr.Condition) (*gorm.DB, error) {
	for _, cond := range conditions {
		switch cond.Op {
		case filterexpr.OpEQ:
			tx = tx.Where(cond.Column+" = ?", cond.Value)
		case filterexpr.OpGTE:
			tx = tx.Where(cond.Column+" >= ?", cond.Value)
		case filterexpr.OpLTE:
			tx = tx.Where(cond.Column+" <= ?", cond.Value)
		case filterexpr.OpIN:
			tx = tx.Where(cond.Column+" IN ?", cond.Value)
		case filterexpr.OpSW:
			prefix, ok := cond.Value.(string)
			if !ok {
				return nil, fmt.Errorf("startsWith requires a string value for column %s", cond.Column)
			}
			tx = tx.Where(cond.Column+` LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%")
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", string(cond.Op))
		}
	}
	return tx, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *cardRepository) Delete(ctx context.Context, deckID, id int64) error {
	result := r.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Delete(&model.Card{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrCardNotFound
	}
	return nil
}

func (r *cardRepository) ListDue(ctx context.Context, deckID int64, dir entity.Direction, now time.Time, limit int) ([]entity.Card, error) {
	prefix := columnPrefix(dir)

	var rows []model.Card
	err := r.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Where(prefix+"state <> ?", entity.StateNew.String()).
		Where(prefix+"due <= ?", now).
		Order(prefix + "due").
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return cardsFromModels(rows)
}

func (r *cardRepository) ListNew(ctx context.Context, deckID int64, dir entity.Direction, limit int) ([]entity.Card, error) {
	prefix := columnPrefix(dir)

	var rows []model.Card
	err := r.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Where(prefix+"state = ?", entity.StateNew.String()).
		Order("created_at").
		Order("id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return cardsFromModels(rows)
}

func cardsFromModels(rows []model.Card) ([]entity.Card, error) {
	cards := make([]entity.Card, 0, len(rows))
	for i := range rows {
		card, err := cardFromModel(&rows[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

func (r *cardRepository) CountByDeck(ctx context.Context, deckID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("deck_id = ?", deckID).
		Count(&total).Error
	return total, err
}

func (r *cardRepository) CountNew(ctx context.Context, deckID int64, dir entity.Direction) (int64, error) {
	prefix := columnPrefix(dir)

	var total int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("deck_id = ?", deckID).
		Where(prefix+"state = ?", entity.StateNew.String()).
		Count(&total).Error
	return total, err
}

func (r *cardRepository) CountDue(ctx context.Context, deckID int64, dir entity.Direction, now time.Time) (int64, error) {
	prefix := columnPrefix(dir)

	var total int64
	err := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("deck_id = ?", deckID).
		Where(prefix+"state <> ?", entity.StateNew.String()).
		Where(prefix+"due <= ?", now).
		Count(&total).Error
	return total, err
}

func (r *cardRepository) UpdateSchedule(ctx context.Context, cardID int64, dir entity.Direction, sched entity.CardSchedule, expectedVersion int64) error {
	prefix := columnPrefix(dir)

	updates := map[string]any{
		prefix + "state":          sched.State.String(),
		prefix + "due":            sched.Due,
		prefix + "stability":      sched.Stability,
		prefix + "difficulty":     sched.Difficulty,
		prefix + "elapsed_days":   sched.ElapsedDays,
		prefix + "scheduled_days": sched.ScheduledDays,
		prefix + "reps":           sched.Reps,
		prefix + "lapses":         sched.Lapses,
		prefix + "last_review":    sched.LastReview,
		prefix + "learning_step":  sched.LearningStep,
		"version":                 gorm.Expr("version + 1"),
		"updated_at":              time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ? AND version = ?", cardID, expectedVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	// Zero rows means the version moved under us (or the card vanished);
	// either way the caller must reload and retry.
	if result.RowsAffected == 0 {
		return entity.ErrReviewConflict
	}
	return nil
}
