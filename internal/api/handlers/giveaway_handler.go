package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sfirke/meutch/domain"
	"github.com/sfirke/meutch/internal/api/presenters"
	"github.com/sfirke/meutch/pkg/giveaway"
)

type (
	GiveawayHandler interface {
		GetGiveaways(c *fiber.Ctx) error
		ExpressInterest(c *fiber.Ctx) error
		WithdrawInterest(c *fiber.Ctx) error
		GetInterests(c *fiber.Ctx) error
		SelectRecipient(c *fiber.Ctx) error
		ChangeRecipient(c *fiber.Ctx) error
		ReleaseToAll(c *fiber.Ctx) error
		ConfirmHandoff(c *fiber.Ctx) error
	}

	giveawayHandler struct {
		giveawayService giveaway.GiveawayService
		validator       *validator.Validate
	}
)

// maxPageSize caps requested page sizes across the paginated endpoints.
const maxPageSize = 100

func NewGiveawayHandler(giveawayService giveaway.GiveawayService, validator *validator.Validate) GiveawayHandler {
	return &giveawayHandler{
		giveawayService: giveawayService,
		validator:       validator,
	}
}

// claimErrorStatus maps the modeled business errors onto distinct HTTP
// statuses; anything unmodeled falls through to a 500 upstream.
func claimErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrStaleState):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNotOwner):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrInterestNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotGiveaway),
		errors.Is(err, domain.ErrSelfInterest),
		errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrDuplicateInterest),
		errors.Is(err, domain.ErrInterestSelected),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrCandidateNotEligible),
		errors.Is(err, domain.ErrEmptyPool),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *giveawayHandler) GetGiveaways(c *fiber.Ctx) error {
	viewerID, _ := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, count, err := h.giveawayService.ListOpenGiveaways(c.Context(), viewerID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, claimErrorStatus(err), domain.MessageFailedGetGiveaways, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"giveaways": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetGiveaways)
}

func (h *giveawayHandler) ExpressInterest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	req := new(domain.ExpressInterestRequest)
	if err := c.BodyParser(req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExpressInterest, err)
	}

	interest, err := h.giveawayService.ExpressInterest(c.Context(), itemID, userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, claimErrorStatus(err), domain.MessageFailedExpressInterest, err)
	}

	return presenters.SuccessResponse(c, interest, fiber.StatusCreated, domain.MessageSuccessExpressInterest)
}

func (h *giveawayHandler) WithdrawInterest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	if err := h.giveawayService.WithdrawInterest(c.Context(), itemID, userID); err != nil {
		return presenters.ErrorResponse(c, claimErrorStatus(err), domain.MessageFailedWithdrawInterest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessWithdrawInterest)
}

func (h *giveawayHandler) GetInterests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	interests, err := h.giveawayService.ListInterests(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, claimErrorStatus(err), domain.MessageFailedGetInterests, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"interests": interests,
	}, fiber.StatusOK, domain.MessageSuccessGetInterests)
}

func (h *giveawayHandler) SelectRecipient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	req := new(domain.SelectRecipientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSelectRecipient, err)
	}

	state, err := h.giveawayService.SelectRecipient(c.Context(), itemID, userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, claimErrorStatus(err), domain.MessageFailedSelectRecipient, err)
	}

	return presenters.SuccessResponse(c, state, fiber.StatusOK, domain.MessageSuccessSelectRecipient)
}

func (h *giveawayHandler) ChangeRecipient(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	req := new(domain.ChangeRecipientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedChangeRecipient, err)
	}

	state, err := h.giveawayService.ChangeRecipient(c.Context(), itemID, userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, claimErrorStatus(err), domain.MessageFailedChangeRecipient, err)
	}

	return presenters.SuccessResponse(c, state, fiber.StatusOK, domain.MessageSuccessChangeRecipient)
}

func (h *giveawayHandler) ReleaseToAll(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	state, err := h.giveawayService.ReleaseToAll(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, claimErrorStatus(err), domain.MessageFailedReleaseToAll, err)
	}

	return presenters.SuccessResponse(c, state, fiber.StatusOK, domain.MessageSuccessReleaseToAll)
}

func (h *giveawayHandler) ConfirmHandoff(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	state, err := h.giveawayService.ConfirmHandoff(c.Context(), itemID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, claimErrorStatus(err), domain.MessageFailedConfirmHandoff, err)
	}

	return presenters.SuccessResponse(c, state, fiber.StatusOK, domain.MessageSuccessConfirmHandoff)
}
