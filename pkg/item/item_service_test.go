package item

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sfirke/meutch/domain"
	"github.com/sfirke/meutch/entities"
)

type fakeItemRepository struct {
	items map[string]*entities.Item
}

func newFakeItemRepository() *fakeItemRepository {
	return &fakeItemRepository{items: make(map[string]*entities.Item)}
}

func (r *fakeItemRepository) CreateItem(ctx context.Context, item *entities.Item) error {
	clone := *item
	r.items[item.ID.String()] = &clone
	return nil
}

func (r *fakeItemRepository) GetItemByID(ctx context.Context, id string) (*entities.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (r *fakeItemRepository) UpdateItem(ctx context.Context, item *entities.Item) error {
	clone := *item
	r.items[item.ID.String()] = &clone
	return nil
}

func (r *fakeItemRepository) DeleteItem(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepository) GetUserItems(ctx context.Context, userID string, page, limit int) ([]*entities.Item, int64, error) {
	var result []*entities.Item
	for _, item := range r.items {
		if item.OwnerID.String() == userID {
			clone := *item
			result = append(result, &clone)
		}
	}
	return result, int64(len(result)), nil
}

type fakeStorage struct{}

func (fakeStorage) UploadFile(name string, file *multipart.FileHeader, folder string, allowedExts ...string) (string, error) {
	return "items/" + name, nil
}

func (fakeStorage) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.example.com/" + objectKey
}

func TestCreateItemGiveaway(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := newFakeItemRepository()
	service := NewItemService(repo, fakeStorage{})

	created, err := service.CreateItem(ctx, domain.ItemRequest{
		Name:       "winter coat",
		IsGiveaway: true,
	}, owner.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ClaimStatus != entities.ClaimStatusUnclaimed {
		t.Errorf("claim status = %q, want unclaimed", created.ClaimStatus)
	}
	if created.GiveawayVisibility != entities.GiveawayVisibilityDefault {
		t.Errorf("visibility = %q, want default", created.GiveawayVisibility)
	}
	if !created.Available {
		t.Error("new giveaway not available")
	}
	if created.ClaimedByID != "" || created.ClaimedAt != nil {
		t.Error("new giveaway carries claim fields")
	}
}

func TestCreateItemLoanHasNoClaimFields(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepository()
	service := NewItemService(repo, fakeStorage{})

	created, err := service.CreateItem(ctx, domain.ItemRequest{Name: "drill"}, uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ClaimStatus != "" || created.GiveawayVisibility != "" {
		t.Errorf("loan item carries giveaway fields: status=%q visibility=%q", created.ClaimStatus, created.GiveawayVisibility)
	}

	stored := repo.items[created.ID]
	if stored.ClaimStatus != nil || stored.GiveawayVisibility != nil || stored.ClaimedByID != nil || stored.ClaimedAt != nil {
		t.Error("loan item persisted with non-null claim fields")
	}
}

func TestUpdateItemToggleToGiveaway(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	repo := newFakeItemRepository()
	service := NewItemService(repo, fakeStorage{})

	created, err := service.CreateItem(ctx, domain.ItemRequest{Name: "drill"}, owner.String())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := service.UpdateItem(ctx, created.ID, domain.ItemRequest{
		Name:               "drill",
		IsGiveaway:         true,
		GiveawayVisibility: entities.GiveawayVisibilityPublic,
	}, owner.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ClaimStatus != entities.ClaimStatusUnclaimed {
		t.Errorf("claim status = %q, want unclaimed", updated.ClaimStatus)
	}
	if updated.GiveawayVisibility != entities.GiveawayVisibilityPublic {
		t.Errorf("visibility = %q, want public", updated.GiveawayVisibility)
	}
}

func TestUpdateItemToggleOffGiveaway(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("unclaimed giveaway converts back and clears claim fields", func(t *testing.T) {
		repo := newFakeItemRepository()
		service := NewItemService(repo, fakeStorage{})
		created, err := service.CreateItem(ctx, domain.ItemRequest{Name: "coat", IsGiveaway: true}, owner.String())
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		updated, err := service.UpdateItem(ctx, created.ID, domain.ItemRequest{Name: "coat"}, owner.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.IsGiveaway {
			t.Error("item still marked as giveaway")
		}
		stored := repo.items[created.ID]
		if stored.ClaimStatus != nil || stored.GiveawayVisibility != nil || stored.ClaimedByID != nil || stored.ClaimedAt != nil {
			t.Error("claim fields survived the conversion")
		}
		if !stored.Available {
			t.Error("converted loan item not available")
		}
	})

	t.Run("pending giveaway refuses to convert", func(t *testing.T) {
		repo := newFakeItemRepository()
		service := NewItemService(repo, fakeStorage{})
		created, err := service.CreateItem(ctx, domain.ItemRequest{Name: "coat", IsGiveaway: true}, owner.String())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		stored := repo.items[created.ID]
		pending := entities.ClaimStatusPendingPickup
		claimant := uuid.New()
		stored.ClaimStatus = &pending
		stored.ClaimedByID = &claimant
		stored.Available = false

		_, err = service.UpdateItem(ctx, created.ID, domain.ItemRequest{Name: "coat"}, owner.String())
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("got %v, want ErrInvalidTransition", err)
		}
	})
}

func TestGetItemClaimedVisibility(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	claimant := uuid.New()
	stranger := uuid.New()

	seedClaimed := func(claimedAt time.Time) (*fakeItemRepository, ItemService, string) {
		repo := newFakeItemRepository()
		service := NewItemService(repo, fakeStorage{})
		status := entities.ClaimStatusClaimed
		visibility := entities.GiveawayVisibilityDefault
		at := claimedAt
		item := &entities.Item{
			ID:                 uuid.New(),
			OwnerID:            owner,
			Name:               "winter coat",
			IsGiveaway:         true,
			GiveawayVisibility: &visibility,
			ClaimStatus:        &status,
			ClaimedByID:        &claimant,
			ClaimedAt:          &at,
		}
		repo.items[item.ID.String()] = item
		return repo, service, item.ID.String()
	}

	t.Run("both parties see a recently claimed giveaway", func(t *testing.T) {
		_, service, id := seedClaimed(time.Now().UTC().AddDate(0, 0, -10))
		for _, viewer := range []uuid.UUID{owner, claimant} {
			if _, err := service.GetItemByID(ctx, id, viewer.String()); err != nil {
				t.Errorf("viewer %s: unexpected error: %v", viewer, err)
			}
		}
	})

	t.Run("strangers get not found", func(t *testing.T) {
		_, service, id := seedClaimed(time.Now().UTC().AddDate(0, 0, -10))
		_, err := service.GetItemByID(ctx, id, stranger.String())
		if !errors.Is(err, domain.ErrItemNotFound) {
			t.Errorf("got %v, want ErrItemNotFound", err)
		}
	})

	t.Run("parties lose access after the window closes", func(t *testing.T) {
		_, service, id := seedClaimed(time.Now().UTC().AddDate(0, 0, -120))
		for _, viewer := range []uuid.UUID{owner, claimant} {
			if _, err := service.GetItemByID(ctx, id, viewer.String()); !errors.Is(err, domain.ErrItemNotFound) {
				t.Errorf("viewer %s: got %v, want ErrItemNotFound", viewer, err)
			}
		}
	})

	t.Run("unclaimed giveaways stay visible to everyone", func(t *testing.T) {
		repo := newFakeItemRepository()
		service := NewItemService(repo, fakeStorage{})
		created, err := service.CreateItem(ctx, domain.ItemRequest{Name: "coat", IsGiveaway: true}, owner.String())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := service.GetItemByID(ctx, created.ID, stranger.String()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestUpdateItemOwnerOnly(t *testing.T) {
	ctx := context.Background()
	repo := newFakeItemRepository()
	service := NewItemService(repo, fakeStorage{})
	created, err := service.CreateItem(ctx, domain.ItemRequest{Name: "coat"}, uuid.NewString())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = service.UpdateItem(ctx, created.ID, domain.ItemRequest{Name: "coat"}, uuid.NewString())
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("got %v, want ErrNotOwner", err)
	}

	err = service.DeleteItem(ctx, created.ID, uuid.NewString())
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("delete: got %v, want ErrNotOwner", err)
	}
}
