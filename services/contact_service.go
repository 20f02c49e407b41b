package services

import (
	"context"

	apperrors "github.com/formgate/contact-backend/errors"
	"github.com/formgate/contact-backend/logger"
	"github.com/formgate/contact-backend/store"
	"github.com/formgate/contact-backend/types"
)

// ContactService runs the submission workflow: persist the record, then send
// both notification emails. Persist-before-notify is deliberate: durability
// wins over notification, and a notification failure never removes the
// stored record.
type ContactService struct {
	store    store.ContactStore
	notifier ContactNotifier
}

func NewContactService(contactStore store.ContactStore, notifier ContactNotifier) *ContactService {
	return &ContactService{
		store:    contactStore,
		notifier: notifier,
	}
}

// Submit persists the submission and sends the two notification emails.
// When the record was persisted but notification failed, the persisted
// record is returned together with the error so callers can tell the two
// failure modes apart.
func (s *ContactService) Submit(ctx context.Context, contact *types.Contact) (*types.Contact, error) {
	log := logger.GetLogger()

	stored, err := s.store.Create(ctx, contact)
	if err != nil {
		if verr, ok := err.(*store.ConstraintViolationError); ok {
			return nil, apperrors.ValidationFailedWith("Validation failed", verr.Violations)
		}
		return nil, apperrors.NewDatabaseError(err)
	}

	if err := s.notifier.SendContactNotifications(ctx, stored); err != nil {
		// Accepted inconsistency: the submission is stored but the owner or
		// submitter may not have been emailed. No rollback, no retry.
		log.Warnw("Submission persisted but notification failed",
			"contact_id", stored.ID,
			"email", logger.MaskEmail(stored.Email),
			"error", err)
		return stored, apperrors.EmailSendFailed(err)
	}

	log.Infow("Contact submission processed",
		"contact_id", stored.ID,
		"email", logger.MaskEmail(stored.Email))
	return stored, nil
}
