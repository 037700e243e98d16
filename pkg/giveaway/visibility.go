package giveaway

import (
	"time"

	"github.com/google/uuid"
	"github.com/sfirke/meutch/entities"
)

// ClaimedVisibilityDays is how long the two parties of a completed
// giveaway can still see it before it drops out of view entirely.
const ClaimedVisibilityDays = 90

func IsClaimedWithinVisibilityWindow(item *entities.Item, now time.Time) bool {
	if item.ClaimStatus == nil || *item.ClaimStatus != entities.ClaimStatusClaimed {
		return false
	}
	if item.ClaimedAt == nil {
		return false
	}
	cutoff := now.AddDate(0, 0, -ClaimedVisibilityDays)
	return !item.ClaimedAt.Before(cutoff)
}

// IsGiveawayParty reports whether the user is the owner or the claimant.
// A deleted claimant leaves ClaimedByID null, so nobody matches it.
func IsGiveawayParty(item *entities.Item, userID uuid.UUID) bool {
	if item.OwnerID == userID {
		return true
	}
	return item.ClaimedByID != nil && *item.ClaimedByID == userID
}

func CanViewClaimedGiveaway(item *entities.Item, userID uuid.UUID, now time.Time) bool {
	return IsGiveawayParty(item, userID) && IsClaimedWithinVisibilityWindow(item, now)
}
