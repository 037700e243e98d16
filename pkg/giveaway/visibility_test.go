package giveaway

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sfirke/meutch/entities"
)

func claimedItem(owner, claimant uuid.UUID, claimedAt time.Time) *entities.Item {
	status := entities.ClaimStatusClaimed
	at := claimedAt
	return &entities.Item{
		ID:          uuid.New(),
		OwnerID:     owner,
		IsGiveaway:  true,
		ClaimStatus: &status,
		ClaimedByID: &claimant,
		ClaimedAt:   &at,
	}
}

func TestIsClaimedWithinVisibilityWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	owner := uuid.New()
	claimant := uuid.New()

	tests := []struct {
		name string
		item *entities.Item
		want bool
	}{
		{
			name: "claimed yesterday",
			item: claimedItem(owner, claimant, now.AddDate(0, 0, -1)),
			want: true,
		},
		{
			name: "claimed exactly at the cutoff",
			item: claimedItem(owner, claimant, now.AddDate(0, 0, -ClaimedVisibilityDays)),
			want: true,
		},
		{
			name: "claimed one day past the cutoff",
			item: claimedItem(owner, claimant, now.AddDate(0, 0, -ClaimedVisibilityDays-1)),
			want: false,
		},
		{
			name: "pending items have no window",
			item: func() *entities.Item {
				item := claimedItem(owner, claimant, now)
				status := entities.ClaimStatusPendingPickup
				item.ClaimStatus = &status
				item.ClaimedAt = nil
				return item
			}(),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClaimedWithinVisibilityWindow(tt.item, now); got != tt.want {
				t.Errorf("got %t, want %t", got, tt.want)
			}
		})
	}
}

func TestCanViewClaimedGiveaway(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	owner := uuid.New()
	claimant := uuid.New()
	item := claimedItem(owner, claimant, now.AddDate(0, 0, -10))

	if !CanViewClaimedGiveaway(item, owner, now) {
		t.Error("owner cannot view their own claimed giveaway")
	}
	if !CanViewClaimedGiveaway(item, claimant, now) {
		t.Error("claimant cannot view the giveaway they received")
	}
	if CanViewClaimedGiveaway(item, uuid.New(), now) {
		t.Error("stranger can view a claimed giveaway")
	}

	// Deleting the claimant nulls the reference; only the owner remains.
	item.ClaimedByID = nil
	if CanViewClaimedGiveaway(item, claimant, now) {
		t.Error("removed claimant can still view the giveaway")
	}
	if !CanViewClaimedGiveaway(item, owner, now) {
		t.Error("owner lost access after claimant deletion")
	}
}
