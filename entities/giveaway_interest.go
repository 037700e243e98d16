package entities

import (
	"github.com/google/uuid"
)

const (
	InterestStatusActive   = "active"
	InterestStatusSelected = "selected"
)

// GiveawayInterest is one user's standing request for one giveaway item.
// The (item_id, user_id) pair is unique; at most one row per item holds
// status selected at a time.
type GiveawayInterest struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ItemID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_giveaway_interest_item_user" json:"item_id"`
	UserID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_giveaway_interest_item_user" json:"user_id"`
	Message *string   `json:"message,omitempty"`
	Status  string    `gorm:"default:active" json:"status"` // active or selected

	Item *Item `gorm:"foreignKey:ItemID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Timestamp
}
