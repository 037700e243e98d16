package giveaway

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sfirke/meutch/domain"
	"github.com/sfirke/meutch/entities"
	"github.com/sfirke/meutch/pkg/notification"
	"gorm.io/gorm"
)

type (
	// GiveawayService owns the claim lifecycle. Every transition runs in a
	// single transaction holding the item row lock, so two racing requests
	// for the same item serialize and the loser sees the state the winner
	// left behind.
	GiveawayService interface {
		ExpressInterest(ctx context.Context, itemID, userID string, req domain.ExpressInterestRequest) (*domain.Interest, error)
		WithdrawInterest(ctx context.Context, itemID, userID string) error
		ListInterests(ctx context.Context, itemID, actorID string) ([]*domain.Interest, error)
		SelectRecipient(ctx context.Context, itemID, actorID string, req domain.SelectRecipientRequest) (*domain.ClaimState, error)
		ChangeRecipient(ctx context.Context, itemID, actorID string, req domain.ChangeRecipientRequest) (*domain.ClaimState, error)
		ReleaseToAll(ctx context.Context, itemID, actorID string) (*domain.ClaimState, error)
		ConfirmHandoff(ctx context.Context, itemID, actorID string) (*domain.ClaimState, error)
		ListOpenGiveaways(ctx context.Context, viewerID string, page, limit int) ([]*domain.Item, int64, error)
	}

	giveawayService struct {
		giveawayRepository GiveawayRepository
		selector           *Selector
		notifier           notification.Notifier
	}
)

func NewGiveawayService(giveawayRepository GiveawayRepository, selector *Selector, notifier notification.Notifier) GiveawayService {
	return &giveawayService{
		giveawayRepository: giveawayRepository,
		selector:           selector,
		notifier:           notifier,
	}
}

// SyncAvailability recomputes the derived visibility flag for giveaway
// items: listed exactly while unclaimed. Non-giveaway items follow the loan
// logic and are left alone. Every code path that writes claim fields must
// go through this instead of setting Available directly.
func SyncAvailability(item *entities.Item) {
	if !item.IsGiveaway {
		return
	}
	item.Available = item.ClaimStatus != nil && *item.ClaimStatus == entities.ClaimStatusUnclaimed
}

// checkClaimTransition validates a from -> to edge against the item's
// current state. A request that lost a race observes the target state
// already in place and gets ErrStaleState; anything else off the graph is
// ErrInvalidTransition.
func checkClaimTransition(item *entities.Item, from, to string) error {
	if item.ClaimStatus == nil {
		return domain.ErrNotGiveaway
	}
	switch *item.ClaimStatus {
	case from:
		return nil
	case to:
		return domain.ErrStaleState
	default:
		return domain.ErrInvalidTransition
	}
}

func (s *giveawayService) ExpressInterest(ctx context.Context, itemID, userID string, req domain.ExpressInterestRequest) (*domain.Interest, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	var item *entities.Item
	var created *entities.GiveawayInterest

	err = s.giveawayRepository.Transaction(ctx, func(tx GiveawayRepository) error {
		var err error
		item, err = tx.GetItemForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		if !item.IsGiveaway {
			return domain.ErrNotGiveaway
		}
		if item.OwnerID == userUUID {
			return domain.ErrSelfInterest
		}
		if item.ClaimStatus == nil || *item.ClaimStatus != entities.ClaimStatusUnclaimed {
			return domain.ErrItemUnavailable
		}

		existing, err := tx.GetInterest(ctx, itemID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateInterest
		}

		created = &entities.GiveawayInterest{
			ID:     uuid.New(),
			ItemID: item.ID,
			UserID: userUUID,
			Status: entities.InterestStatusActive,
		}
		if req.Message != "" {
			message := req.Message
			created.Message = &message
		}

		if err := tx.CreateInterest(ctx, created); err != nil {
			// The unique index on (item_id, user_id) is the backstop for
			// double submits that slip past the read above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateInterest
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyInterest(ctx, item, userUUID, req.Message)

	return toDomainInterest(created), nil
}

func (s *giveawayService) WithdrawInterest(ctx context.Context, itemID, userID string) error {
	return s.giveawayRepository.Transaction(ctx, func(tx GiveawayRepository) error {
		item, err := tx.GetItemForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}

		interest, err := tx.GetInterest(ctx, itemID, userID)
		if err != nil {
			return err
		}
		if interest == nil {
			return domain.ErrInterestNotFound
		}
		// The selected recipient cannot silently vanish; the owner has to
		// release or reassign first so they know the handoff is off.
		if interest.Status == entities.InterestStatusSelected {
			return domain.ErrInterestSelected
		}

		return tx.DeleteInterest(ctx, interest.ID.String())
	})
}

func (s *giveawayService) ListInterests(ctx context.Context, itemID, actorID string) ([]*domain.Interest, error) {
	item, err := s.giveawayRepository.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if item.OwnerID.String() != actorID {
		return nil, domain.ErrNotOwner
	}
	if !item.IsGiveaway {
		return nil, domain.ErrNotGiveaway
	}

	interests, err := s.giveawayRepository.ListInterests(ctx, itemID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Interest, 0, len(interests))
	for _, interest := range interests {
		result = append(result, toDomainInterest(interest))
	}
	return result, nil
}

func (s *giveawayService) SelectRecipient(ctx context.Context, itemID, actorID string, req domain.SelectRecipientRequest) (*domain.ClaimState, error) {
	var item *entities.Item
	var candidate *entities.GiveawayInterest

	err := s.giveawayRepository.Transaction(ctx, func(tx GiveawayRepository) error {
		var err error
		item, err = s.lockOwnedGiveaway(ctx, tx, itemID, actorID)
		if err != nil {
			return err
		}
		if err := checkClaimTransition(item, entities.ClaimStatusUnclaimed, entities.ClaimStatusPendingPickup); err != nil {
			return err
		}

		pool, err := tx.ListActiveInterests(ctx, itemID)
		if err != nil {
			return err
		}
		candidate, err = s.selector.Pick(SelectionInput{
			Pool:   pool,
			Method: req.SelectionMethod,
			UserID: req.UserID,
		})
		if err != nil {
			return err
		}

		if err := tx.UpdateInterestStatus(ctx, candidate.ID.String(), entities.InterestStatusSelected); err != nil {
			return err
		}

		status := entities.ClaimStatusPendingPickup
		claimedBy := candidate.UserID
		item.ClaimStatus = &status
		item.ClaimedByID = &claimedBy
		SyncAvailability(item)
		return tx.SaveItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifySelected(ctx, item, candidate.UserID)

	return toClaimState(item), nil
}

func (s *giveawayService) ChangeRecipient(ctx context.Context, itemID, actorID string, req domain.ChangeRecipientRequest) (*domain.ClaimState, error) {
	var item *entities.Item
	var candidate *entities.GiveawayInterest
	var prior *uuid.UUID

	err := s.giveawayRepository.Transaction(ctx, func(tx GiveawayRepository) error {
		var err error
		item, err = s.lockOwnedGiveaway(ctx, tx, itemID, actorID)
		if err != nil {
			return err
		}
		if err := checkClaimTransition(item, entities.ClaimStatusPendingPickup, entities.ClaimStatusPendingPickup); err != nil {
			return err
		}

		if item.ClaimedByID != nil {
			priorID := *item.ClaimedByID
			prior = &priorID
		}

		pool, err := tx.ListActiveInterests(ctx, itemID)
		if err != nil {
			return err
		}
		excluded := ""
		if prior != nil {
			excluded = prior.String()
		}
		candidate, err = s.selector.Pick(SelectionInput{
			Pool:           pool,
			Method:         req.SelectionMethod,
			UserID:         req.UserID,
			ExcludedUserID: excluded,
		})
		if err != nil {
			return err
		}

		if err := tx.RevertSelectedInterest(ctx, itemID); err != nil {
			return err
		}
		if err := tx.UpdateInterestStatus(ctx, candidate.ID.String(), entities.InterestStatusSelected); err != nil {
			return err
		}

		claimedBy := candidate.UserID
		item.ClaimedByID = &claimedBy
		SyncAvailability(item)
		return tx.SaveItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyReassigned(ctx, item, candidate.UserID, prior)

	return toClaimState(item), nil
}

func (s *giveawayService) ReleaseToAll(ctx context.Context, itemID, actorID string) (*domain.ClaimState, error) {
	var item *entities.Item
	var prior *uuid.UUID

	err := s.giveawayRepository.Transaction(ctx, func(tx GiveawayRepository) error {
		var err error
		item, err = s.lockOwnedGiveaway(ctx, tx, itemID, actorID)
		if err != nil {
			return err
		}
		if err := checkClaimTransition(item, entities.ClaimStatusPendingPickup, entities.ClaimStatusUnclaimed); err != nil {
			return err
		}

		if item.ClaimedByID != nil {
			priorID := *item.ClaimedByID
			prior = &priorID
		}

		if err := tx.RevertSelectedInterest(ctx, itemID); err != nil {
			return err
		}

		status := entities.ClaimStatusUnclaimed
		item.ClaimStatus = &status
		item.ClaimedByID = nil
		SyncAvailability(item)
		return tx.SaveItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	// Only the recipient who was counting on the item hears about the
	// release; everyone else just sees it reappear in the feed.
	if prior != nil {
		s.notifier.NotifyReleased(ctx, item, *prior)
	}

	return toClaimState(item), nil
}

func (s *giveawayService) ConfirmHandoff(ctx context.Context, itemID, actorID string) (*domain.ClaimState, error) {
	var item *entities.Item

	err := s.giveawayRepository.Transaction(ctx, func(tx GiveawayRepository) error {
		var err error
		item, err = s.lockOwnedGiveaway(ctx, tx, itemID, actorID)
		if err != nil {
			return err
		}
		if err := checkClaimTransition(item, entities.ClaimStatusPendingPickup, entities.ClaimStatusClaimed); err != nil {
			return err
		}

		now := time.Now().UTC()
		status := entities.ClaimStatusClaimed
		item.ClaimStatus = &status
		item.ClaimedAt = &now
		SyncAvailability(item)
		return tx.SaveItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	// The recipient already knows; no notification for bookkeeping.
	return toClaimState(item), nil
}

func (s *giveawayService) ListOpenGiveaways(ctx context.Context, viewerID string, page, limit int) ([]*domain.Item, int64, error) {
	items, count, err := s.giveawayRepository.ListOpenGiveaways(ctx, viewerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID.String())
	}
	interested, err := s.giveawayRepository.CountActiveInterestsByItem(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		mapped := toDomainItem(item)
		mapped.InterestCount = interested[item.ID.String()]
		result = append(result, mapped)
	}
	return result, count, nil
}

// lockOwnedGiveaway fetches the item under a row lock and runs the checks
// shared by every owner-driven transition.
func (s *giveawayService) lockOwnedGiveaway(ctx context.Context, tx GiveawayRepository, itemID, actorID string) (*entities.Item, error) {
	item, err := tx.GetItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if item.OwnerID.String() != actorID {
		return nil, domain.ErrNotOwner
	}
	if !item.IsGiveaway {
		return nil, domain.ErrNotGiveaway
	}
	return item, nil
}

func toDomainInterest(interest *entities.GiveawayInterest) *domain.Interest {
	result := &domain.Interest{
		ID:        interest.ID.String(),
		UserID:    interest.UserID.String(),
		Status:    interest.Status,
		CreatedAt: interest.CreatedAt,
	}
	if interest.Message != nil {
		result.Message = *interest.Message
	}
	if interest.User != nil {
		result.UserName = interest.User.FirstName + " " + interest.User.LastName
	}
	return result
}

func toClaimState(item *entities.Item) *domain.ClaimState {
	state := &domain.ClaimState{
		Available: item.Available,
		ClaimedAt: item.ClaimedAt,
	}
	if item.ClaimStatus != nil {
		state.ClaimStatus = *item.ClaimStatus
	}
	if item.ClaimedByID != nil {
		state.ClaimedByID = item.ClaimedByID.String()
	}
	return state
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
