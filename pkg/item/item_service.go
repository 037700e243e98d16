package item

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sfirke/meutch/domain"
	"github.com/sfirke/meutch/entities"
	"github.com/sfirke/meutch/internal/utils/storage"
	"github.com/sfirke/meutch/pkg/giveaway"
)

type (
	ItemService interface {
		CreateItem(ctx context.Context, req domain.ItemRequest, userID string) (*domain.Item, error)
		GetItemByID(ctx context.Context, id string, viewerID string) (*domain.Item, error)
		UpdateItem(ctx context.Context, id string, req domain.ItemRequest, userID string) (*domain.Item, error)
		DeleteItem(ctx context.Context, id string, userID string) error
		GetUserItems(ctx context.Context, userID string, page, limit int) ([]*domain.Item, int64, error)
	}

	itemService struct {
		itemRepository ItemRepository
		s3             storage.AwsS3
	}
)

func NewItemService(itemRepository ItemRepository, s3 storage.AwsS3) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		s3:             s3,
	}
}

func (s *itemService) CreateItem(ctx context.Context, req domain.ItemRequest, userID string) (*domain.Item, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	itemID := uuid.New()

	var imageURL string
	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("item-%s", itemID.String()),
			req.Image,
			"items",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	item := &entities.Item{
		ID:          itemID,
		OwnerID:     userUUID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    imageURL,
		Available:   true,
	}

	if req.IsGiveaway {
		initGiveawayFields(item, req.GiveawayVisibility)
	}

	if err := s.itemRepository.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return toDomainItem(item), nil
}

func (s *itemService) GetItemByID(ctx context.Context, id string, viewerID string) (*domain.Item, error) {
	viewerUUID, err := uuid.Parse(viewerID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	// A completed giveaway stays visible to the owner and the claimant for
	// a while, then drops out of view entirely.
	if item.IsGiveaway && item.ClaimStatus != nil && *item.ClaimStatus == entities.ClaimStatusClaimed {
		if !giveaway.CanViewClaimedGiveaway(item, viewerUUID, time.Now().UTC()) {
			return nil, domain.ErrItemNotFound
		}
	}

	return toDomainItem(item), nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req domain.ItemRequest, userID string) (*domain.Item, error) {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if item.OwnerID.String() != userID {
		return nil, domain.ErrNotOwner
	}

	item.Name = req.Name
	item.Description = req.Description

	if req.Image != nil {
		objectKey, err := s.s3.UploadFile(
			fmt.Sprintf("item-%s", item.ID.String()),
			req.Image,
			"items",
			storage.AllowImage...,
		)
		if err != nil {
			return nil, err
		}
		item.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	switch {
	case req.IsGiveaway && !item.IsGiveaway:
		item.IsGiveaway = true
		initGiveawayFields(item, req.GiveawayVisibility)
	case req.IsGiveaway && item.IsGiveaway:
		visibility := req.GiveawayVisibility
		if visibility == "" {
			visibility = entities.GiveawayVisibilityDefault
		}
		item.GiveawayVisibility = &visibility
	case !req.IsGiveaway && item.IsGiveaway:
		// A giveaway with a selected or confirmed recipient cannot be
		// quietly turned back into a loan item.
		if item.ClaimStatus != nil && *item.ClaimStatus != entities.ClaimStatusUnclaimed {
			return nil, domain.ErrInvalidTransition
		}
		item.IsGiveaway = false
		item.GiveawayVisibility = nil
		item.ClaimStatus = nil
		item.ClaimedByID = nil
		item.ClaimedAt = nil
		item.Available = true
	}

	if err := s.itemRepository.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return toDomainItem(item), nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string, userID string) error {
	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}
	if item.OwnerID.String() != userID {
		return domain.ErrNotOwner
	}
	return s.itemRepository.DeleteItem(ctx, id)
}

func (s *itemService) GetUserItems(ctx context.Context, userID string, page, limit int) ([]*domain.Item, int64, error) {
	items, count, err := s.itemRepository.GetUserItems(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		result = append(result, toDomainItem(item))
	}
	return result, count, nil
}

// initGiveawayFields starts the claim lifecycle for a new or converted
// giveaway. From here on only the claim state machine writes these fields.
func initGiveawayFields(item *entities.Item, visibility string) {
	if visibility == "" {
		visibility = entities.GiveawayVisibilityDefault
	}
	status := entities.ClaimStatusUnclaimed
	item.IsGiveaway = true
	item.GiveawayVisibility = &visibility
	item.ClaimStatus = &status
	item.ClaimedByID = nil
	item.ClaimedAt = nil
	giveaway.SyncAvailability(item)
}

func toDomainItem(item *entities.Item) *domain.Item {
	result := &domain.Item{
		ID:          item.ID.String(),
		OwnerID:     item.OwnerID.String(),
		Name:        item.Name,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		Available:   item.Available,
		IsGiveaway:  item.IsGiveaway,
		ClaimedAt:   item.ClaimedAt,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.GiveawayVisibility != nil {
		result.GiveawayVisibility = *item.GiveawayVisibility
	}
	if item.ClaimStatus != nil {
		result.ClaimStatus = *item.ClaimStatus
	}
	if item.ClaimedByID != nil {
		result.ClaimedByID = item.ClaimedByID.String()
	}
	return result
}
