package entities

import (
	"github.com/google/uuid"
)

// Message is an in-app notification between two users about an item.
type Message struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SenderID    uuid.UUID  `json:"sender_id"`
	RecipientID uuid.UUID  `json:"recipient_id"`
	ItemID      *uuid.UUID `gorm:"type:uuid" json:"item_id,omitempty"`
	Body        string     `json:"body"`
	IsRead      bool       `gorm:"default:false" json:"is_read"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Item      *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:SET NULL" json:"-"`
	Timestamp
}
