package notification

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/sfirke/meutch/entities"
	"github.com/sfirke/meutch/internal/utils/mailing"
)

type (
	// Notifier decides what message accompanies a claim transition and to
	// whom. Every method is best-effort: a delivery problem is logged and
	// never surfaces to the caller, since the state change it announces has
	// already committed.
	Notifier interface {
		NotifySelected(ctx context.Context, item *entities.Item, recipientID uuid.UUID)
		NotifyReassigned(ctx context.Context, item *entities.Item, newRecipientID uuid.UUID, priorRecipientID *uuid.UUID)
		NotifyReleased(ctx context.Context, item *entities.Item, priorRecipientID uuid.UUID)
		NotifyInterest(ctx context.Context, item *entities.Item, requesterID uuid.UUID, message string)
	}

	notifier struct {
		notificationRepository NotificationRepository
		mailer                 mailing.Mailer
	}
)

func NewNotifier(notificationRepository NotificationRepository, mailer mailing.Mailer) Notifier {
	return &notifier{
		notificationRepository: notificationRepository,
		mailer:                 mailer,
	}
}

func (n *notifier) NotifySelected(ctx context.Context, item *entities.Item, recipientID uuid.UUID) {
	body := fmt.Sprintf("Good news! You have been selected to receive %q. The owner will be in touch to arrange pickup.", item.Name)
	n.deliver(ctx, item, item.OwnerID, recipientID, body)
}

func (n *notifier) NotifyReassigned(ctx context.Context, item *entities.Item, newRecipientID uuid.UUID, priorRecipientID *uuid.UUID) {
	body := fmt.Sprintf("Good news! You have been selected to receive %q. The owner will be in touch to arrange pickup.", item.Name)
	n.deliver(ctx, item, item.OwnerID, newRecipientID, body)

	if priorRecipientID == nil {
		return
	}
	replaced := fmt.Sprintf("The owner of %q has selected another recipient. You are no longer the selected recipient for this giveaway.", item.Name)
	n.deliver(ctx, item, item.OwnerID, *priorRecipientID, replaced)
}

func (n *notifier) NotifyReleased(ctx context.Context, item *entities.Item, priorRecipientID uuid.UUID) {
	body := fmt.Sprintf("The giveaway %q has been released back to all requesters. You are no longer the selected recipient.", item.Name)
	n.deliver(ctx, item, item.OwnerID, priorRecipientID, body)
}

func (n *notifier) NotifyInterest(ctx context.Context, item *entities.Item, requesterID uuid.UUID, message string) {
	body := message
	if body == "" {
		body = fmt.Sprintf("Someone is interested in your giveaway %q.", item.Name)
	}
	n.deliver(ctx, item, requesterID, item.OwnerID, body)
}

func (n *notifier) deliver(ctx context.Context, item *entities.Item, senderID, recipientID uuid.UUID, body string) {
	itemID := item.ID
	message := &entities.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		ItemID:      &itemID,
		Body:        body,
	}

	if err := n.notificationRepository.CreateMessage(ctx, message); err != nil {
		log.Errorf("notification: create message for user %s item %s: %v", recipientID, item.ID, err)
		return
	}

	recipient, err := n.notificationRepository.GetUserByID(ctx, recipientID.String())
	if err != nil || recipient == nil {
		log.Errorf("notification: lookup recipient %s: %v", recipientID, err)
		return
	}

	subject := fmt.Sprintf("New message about %s", item.Name)
	if err := n.mailer.SendMail(recipient.Email, subject, body); err != nil {
		log.Errorf("notification: send mail to %s: %v", recipient.Email, err)
	}
}
