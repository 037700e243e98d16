package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	AboutMe      string    `json:"about_me,omitempty"`
	City         string    `json:"city,omitempty"`

	Items     []*Item             `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Interests []*GiveawayInterest `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Timestamp
}
