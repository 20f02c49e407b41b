// Package store defines the persistence interfaces and errors for contact
// submissions.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/formgate/contact-backend/types"
)

var (
	// ErrNotFound indicates that no record matches the given ID.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidStatus indicates a status outside {unread, read, replied}.
	ErrInvalidStatus = errors.New("invalid contact status")
)

// ConstraintViolationError reports the storage boundary's own constraint
// re-check rejecting a record. Violations are human-readable messages.
type ConstraintViolationError struct {
	Violations []string
}

func (e *ConstraintViolationError) Error() string {
	return "constraint violation: " + strings.Join(e.Violations, "; ")
}

// ContactStore abstracts persistence of contact submissions.
type ContactStore interface {
	// Create persists a new submission, assigning ID, status and creation
	// time, and returns the stored record.
	Create(ctx context.Context, contact *types.Contact) (*types.Contact, error)

	// List returns one page of submissions ordered by creation time
	// descending, plus total and page counts.
	List(ctx context.Context, filter types.ContactFilter) (*types.ContactPage, error)

	// UpdateStatus atomically sets the status of the matching record and
	// returns it. Returns ErrNotFound or ErrInvalidStatus on failure.
	UpdateStatus(ctx context.Context, id string, status types.ContactStatus) (*types.Contact, error)

	// Delete removes the matching record irrevocably. Returns ErrNotFound
	// if no record matches.
	Delete(ctx context.Context, id string) error
}
