package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddItem    = "item listed successfully"
	MessageSuccessGetItems   = "items retrieved successfully"
	MessageSuccessGetItem    = "item retrieved successfully"
	MessageSuccessUpdateItem = "item updated successfully"
	MessageSuccessDeleteItem = "item deleted successfully"

	MessageFailedAddItem    = "failed to list item"
	MessageFailedGetItems   = "failed to retrieve items"
	MessageFailedGetItem    = "failed to retrieve item"
	MessageFailedUpdateItem = "failed to update item"
	MessageFailedDeleteItem = "failed to delete item"

	ErrItemNotFound = errors.New("item not found")
)

type (
	ItemRequest struct {
		Name               string                `json:"name" form:"name" validate:"required,max=100"`
		Description        string                `json:"description" form:"description" validate:"omitempty"`
		IsGiveaway         bool                  `json:"is_giveaway" form:"is_giveaway"`
		GiveawayVisibility string                `json:"giveaway_visibility" form:"giveaway_visibility" validate:"omitempty,oneof=default public"`
		Image              *multipart.FileHeader `json:"-" form:"image"`
	}

	Item struct {
		ID                 string     `json:"id"`
		OwnerID            string     `json:"owner_id"`
		Name               string     `json:"name"`
		Description        string     `json:"description"`
		ImageURL           string     `json:"image_url,omitempty"`
		Available          bool       `json:"available"`
		IsGiveaway         bool       `json:"is_giveaway"`
		GiveawayVisibility string     `json:"giveaway_visibility,omitempty"`
		ClaimStatus        string     `json:"claim_status,omitempty"`
		ClaimedByID        string     `json:"claimed_by_id,omitempty"`
		ClaimedAt          *time.Time `json:"claimed_at,omitempty"`
		InterestCount      int64      `json:"interest_count,omitempty"`
		CreatedAt          time.Time  `json:"created_at"`
		UpdatedAt          time.Time  `json:"updated_at"`
	}
)
