package giveaway

import (
	"context"
	"errors"

	"github.com/sfirke/meutch/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	GiveawayRepository interface {
		// Transaction runs fn against a transactional copy of the
		// repository. Item and interest rows for one item are only ever
		// mutated together inside one call.
		Transaction(ctx context.Context, fn func(tx GiveawayRepository) error) error

		// Items
		GetItemByID(ctx context.Context, id string) (*entities.Item, error)
		// GetItemForUpdate locks the item row for the rest of the
		// surrounding transaction.
		GetItemForUpdate(ctx context.Context, id string) (*entities.Item, error)
		SaveItem(ctx context.Context, item *entities.Item) error
		// ListOpenGiveaways returns unclaimed giveaways the viewer may see:
		// members see default and public listings except their own, an
		// anonymous viewer (empty viewerID) sees public listings only.
		ListOpenGiveaways(ctx context.Context, viewerID string, page, limit int) ([]*entities.Item, int64, error)

		// Interests
		CreateInterest(ctx context.Context, interest *entities.GiveawayInterest) error
		DeleteInterest(ctx context.Context, id string) error
		GetInterest(ctx context.Context, itemID, userID string) (*entities.GiveawayInterest, error)
		ListInterests(ctx context.Context, itemID string) ([]*entities.GiveawayInterest, error)
		ListActiveInterests(ctx context.Context, itemID string) ([]*entities.GiveawayInterest, error)
		// CountActiveInterestsByItem returns active-interest counts keyed by
		// item id, one query for a whole feed page.
		CountActiveInterestsByItem(ctx context.Context, itemIDs []string) (map[string]int64, error)
		UpdateInterestStatus(ctx context.Context, id string, status string) error
		// RevertSelectedInterest flips the item's selected row, if any,
		// back to active.
		RevertSelectedInterest(ctx context.Context, itemID string) error
	}

	giveawayRepository struct {
		db *gorm.DB
	}
)

func NewGiveawayRepository(db *gorm.DB) GiveawayRepository {
	return &giveawayRepository{
		db: db,
	}
}

func (r *giveawayRepository) Transaction(ctx context.Context, fn func(tx GiveawayRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&giveawayRepository{db: tx})
	})
}

func (r *giveawayRepository) GetItemByID(ctx context.Context, id string) (*entities.Item, error) {
	var item entities.Item
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("ClaimedBy").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *giveawayRepository) GetItemForUpdate(ctx context.Context, id string) (*entities.Item, error) {
	var item entities.Item
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *giveawayRepository) SaveItem(ctx context.Context, item *entities.Item) error {
	// Save writes every column so cleared claim fields are persisted as null.
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *giveawayRepository) ListOpenGiveaways(ctx context.Context, viewerID string, page, limit int) ([]*entities.Item, int64, error) {
	var items []*entities.Item
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).
		Model(&entities.Item{}).
		Where("is_giveaway = ? AND claim_status = ?", true, entities.ClaimStatusUnclaimed)

	if viewerID == "" {
		query = query.Where("giveaway_visibility = ?", entities.GiveawayVisibilityPublic)
	} else {
		query = query.Where("owner_id <> ?", viewerID)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Owner").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *giveawayRepository) CreateInterest(ctx context.Context, interest *entities.GiveawayInterest) error {
	return r.db.WithContext(ctx).Create(interest).Error
}

func (r *giveawayRepository) DeleteInterest(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entities.GiveawayInterest{}, "id = ?", id).Error
}

func (r *giveawayRepository) GetInterest(ctx context.Context, itemID, userID string) (*entities.GiveawayInterest, error) {
	var interest entities.GiveawayInterest
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		First(&interest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &interest, nil
}

func (r *giveawayRepository) ListInterests(ctx context.Context, itemID string) ([]*entities.GiveawayInterest, error) {
	var interests []*entities.GiveawayInterest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&interests).Error; err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *giveawayRepository) ListActiveInterests(ctx context.Context, itemID string) ([]*entities.GiveawayInterest, error) {
	var interests []*entities.GiveawayInterest
	if err := r.db.WithContext(ctx).
		Where("item_id = ? AND status = ?", itemID, entities.InterestStatusActive).
		Order("created_at ASC, id ASC").
		Find(&interests).Error; err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *giveawayRepository) CountActiveInterestsByItem(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	if len(itemIDs) == 0 {
		return map[string]int64{}, nil
	}

	var rows []struct {
		ItemID string
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.GiveawayInterest{}).
		Select("item_id, count(*) as total").
		Where("item_id IN ? AND status = ?", itemIDs, entities.InterestStatusActive).
		Group("item_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ItemID] = row.Total
	}
	return counts, nil
}

func (r *giveawayRepository) UpdateInterestStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).
		Model(&entities.GiveawayInterest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *giveawayRepository) RevertSelectedInterest(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.GiveawayInterest{}).
		Where("item_id = ? AND status = ?", itemID, entities.InterestStatusSelected).
		Update("status", entities.InterestStatusActive).Error
}
