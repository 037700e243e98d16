package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClaimStatusUnclaimed     = "unclaimed"
	ClaimStatusPendingPickup = "pending_pickup"
	ClaimStatusClaimed       = "claimed"
)

const (
	GiveawayVisibilityDefault = "default"
	GiveawayVisibilityPublic  = "public"
)

// Item is a community listing. Loan items only carry the base fields;
// the claim fields are set when is_giveaway is true and stay null otherwise.
type Item struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Available   bool      `gorm:"default:true" json:"available"`

	IsGiveaway         bool       `gorm:"default:false" json:"is_giveaway"`
	GiveawayVisibility *string    `json:"giveaway_visibility,omitempty"` // default or public
	ClaimStatus        *string    `json:"claim_status,omitempty"`        // unclaimed, pending_pickup, claimed
	ClaimedByID        *uuid.UUID `gorm:"type:uuid" json:"claimed_by_id,omitempty"`
	ClaimedAt          *time.Time `json:"claimed_at,omitempty"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	// ClaimedBy survives user deletion as a null reference; claim_status
	// and claimed_at keep their historical values.
	ClaimedBy *User               `gorm:"foreignKey:ClaimedByID;constraint:OnDelete:SET NULL" json:"claimed_by,omitempty"`
	Interests []*GiveawayInterest `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}
