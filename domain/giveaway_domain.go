package domain

import (
	"errors"
	"time"
)

const (
	SelectionMethodManual = "manual"
	SelectionMethodFirst  = "first"
	SelectionMethodRandom = "random"
	// SelectionMethodNext is accepted on change-recipient and behaves like
	// first with the prior recipient excluded.
	SelectionMethodNext = "next"
)

var (
	MessageSuccessExpressInterest  = "your interest has been recorded"
	MessageSuccessWithdrawInterest = "your interest has been withdrawn"
	MessageSuccessGetInterests     = "interested users retrieved successfully"
	MessageSuccessSelectRecipient  = "recipient has been selected"
	MessageSuccessChangeRecipient  = "recipient has been changed"
	MessageSuccessReleaseToAll     = "giveaway released back to everyone"
	MessageSuccessConfirmHandoff   = "handoff confirmed"
	MessageSuccessGetGiveaways     = "giveaways retrieved successfully"

	MessageFailedExpressInterest  = "failed to record interest"
	MessageFailedWithdrawInterest = "failed to withdraw interest"
	MessageFailedGetInterests     = "failed to retrieve interested users"
	MessageFailedSelectRecipient  = "failed to select recipient"
	MessageFailedChangeRecipient  = "failed to change recipient"
	MessageFailedReleaseToAll     = "failed to release giveaway"
	MessageFailedConfirmHandoff   = "failed to confirm handoff"
	MessageFailedGetGiveaways     = "failed to retrieve giveaways"

	ErrNotGiveaway          = errors.New("this item is not a giveaway")
	ErrSelfInterest         = errors.New("you cannot express interest in your own giveaway")
	ErrItemUnavailable      = errors.New("this giveaway is no longer available")
	ErrDuplicateInterest    = errors.New("you have already expressed interest in this giveaway")
	ErrInterestNotFound     = errors.New("no interest found for this giveaway")
	ErrInterestSelected     = errors.New("you are the selected recipient, ask the owner to release the giveaway instead")
	ErrNotOwner             = errors.New("you do not have permission to manage this giveaway")
	ErrInvalidTransition    = errors.New("this action is not allowed in the giveaway's current state")
	ErrCandidateNotEligible = errors.New("that user is not in the pool of active requesters")
	ErrEmptyPool            = errors.New("no active requesters to choose from")
	ErrStaleState           = errors.New("this item's status just changed, please refresh and try again")
)

type (
	ExpressInterestRequest struct {
		Message string `json:"message" form:"message" validate:"omitempty,max=500"`
	}

	SelectRecipientRequest struct {
		SelectionMethod string `json:"selection_method" form:"selection_method" validate:"required,oneof=manual first random"`
		UserID          string `json:"user_id" form:"user_id" validate:"omitempty,uuid"`
	}

	ChangeRecipientRequest struct {
		SelectionMethod string `json:"selection_method" form:"selection_method" validate:"required,oneof=manual first random next"`
		UserID          string `json:"user_id" form:"user_id" validate:"omitempty,uuid"`
	}

	Interest struct {
		ID        string    `json:"id"`
		UserID    string    `json:"user_id"`
		UserName  string    `json:"user_name,omitempty"`
		Message   string    `json:"message,omitempty"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
	}

	ClaimState struct {
		ClaimStatus string     `json:"claim_status"`
		ClaimedByID string     `json:"claimed_by_id,omitempty"`
		ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
		Available   bool       `json:"available"`
	}
)
