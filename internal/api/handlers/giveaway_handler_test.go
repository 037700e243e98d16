package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sfirke/meutch/domain"
)

type fakeGiveawayService struct {
	viewerID string
	page     int
	limit    int
}

func (s *fakeGiveawayService) ExpressInterest(ctx context.Context, itemID, userID string, req domain.ExpressInterestRequest) (*domain.Interest, error) {
	return &domain.Interest{}, nil
}

func (s *fakeGiveawayService) WithdrawInterest(ctx context.Context, itemID, userID string) error {
	return nil
}

func (s *fakeGiveawayService) ListInterests(ctx context.Context, itemID, actorID string) ([]*domain.Interest, error) {
	return nil, nil
}

func (s *fakeGiveawayService) SelectRecipient(ctx context.Context, itemID, actorID string, req domain.SelectRecipientRequest) (*domain.ClaimState, error) {
	return &domain.ClaimState{}, nil
}

func (s *fakeGiveawayService) ChangeRecipient(ctx context.Context, itemID, actorID string, req domain.ChangeRecipientRequest) (*domain.ClaimState, error) {
	return &domain.ClaimState{}, nil
}

func (s *fakeGiveawayService) ReleaseToAll(ctx context.Context, itemID, actorID string) (*domain.ClaimState, error) {
	return &domain.ClaimState{}, nil
}

func (s *fakeGiveawayService) ConfirmHandoff(ctx context.Context, itemID, actorID string) (*domain.ClaimState, error) {
	return &domain.ClaimState{}, nil
}

func (s *fakeGiveawayService) ListOpenGiveaways(ctx context.Context, viewerID string, page, limit int) ([]*domain.Item, int64, error) {
	s.viewerID = viewerID
	s.page = page
	s.limit = limit
	return nil, 0, nil
}

func TestGetGiveawaysPagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: 20},
		{name: "explicit values", query: "?page=3&limit=50", wantPage: 3, wantLimit: 50},
		{name: "limit capped", query: "?limit=5000", wantPage: 1, wantLimit: maxPageSize},
		{name: "garbage falls back", query: "?page=-2&limit=zero", wantPage: 1, wantLimit: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeGiveawayService{}
			handler := NewGiveawayHandler(service, validator.New())

			app := fiber.New()
			app.Get("/giveaways", handler.GetGiveaways)

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/giveaways"+tt.query, nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if service.page != tt.wantPage || service.limit != tt.wantLimit {
				t.Errorf("service got page=%d limit=%d, want page=%d limit=%d", service.page, service.limit, tt.wantPage, tt.wantLimit)
			}
			if service.viewerID != "" {
				t.Errorf("anonymous request passed viewer %q", service.viewerID)
			}
		})
	}
}
