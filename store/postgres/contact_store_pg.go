// Package postgres implements the contact store over PostgreSQL using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/formgate/contact-backend/store"
	"github.com/formgate/contact-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgxpool.Pool used by the store. It allows tests
// to substitute a pgxmock pool.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ store.ContactStore = (*ContactStore)(nil)

// ContactStore implements store.ContactStore using PostgreSQL.
type ContactStore struct {
	db Querier
}

// NewContactStore creates a contact store backed by the given pool.
func NewContactStore(pool *pgxpool.Pool) *ContactStore {
	return &ContactStore{db: pool}
}

// NewContactStoreWithQuerier creates a contact store over any Querier.
// Used by tests with pgxmock.
func NewContactStoreWithQuerier(db Querier) *ContactStore {
	return &ContactStore{db: db}
}

// checkConstraints re-validates field constraints at the storage boundary,
// mirroring the schema's CHECK constraints. Defense in depth beyond the
// request validator.
func checkConstraints(c *types.Contact) *store.ConstraintViolationError {
	var violations []string
	if strings.TrimSpace(c.Name) == "" {
		violations = append(violations, "name must not be blank")
	}
	if len(c.Name) > types.MaxNameLength {
		violations = append(violations, fmt.Sprintf("name must be at most %d characters", types.MaxNameLength))
	}
	if strings.TrimSpace(c.Email) == "" {
		violations = append(violations, "email must not be blank")
	}
	if strings.TrimSpace(c.Message) == "" {
		violations = append(violations, "message must not be blank")
	}
	if len(c.Message) > types.MaxMessageLength {
		violations = append(violations, fmt.Sprintf("message must be at most %d characters", types.MaxMessageLength))
	}
	if len(violations) > 0 {
		return &store.ConstraintViolationError{Violations: violations}
	}
	return nil
}

// Create inserts a new submission. ID, status and created_at come from
// column defaults so they are assigned exactly once, by the database.
func (s *ContactStore) Create(ctx context.Context, contact *types.Contact) (*types.Contact, error) {
	if verr := checkConstraints(contact); verr != nil {
		return nil, verr
	}

	userAgent := contact.UserAgent
	if userAgent == "" {
		userAgent = types.UnknownUserAgent
	}

	query := `
		INSERT INTO contacts (name, email, message, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at`

	stored := *contact
	stored.UserAgent = userAgent
	err := s.db.QueryRow(ctx, query,
		contact.Name,
		contact.Email,
		contact.Message,
		contact.IPAddress,
		userAgent,
	).Scan(&stored.ID, &stored.Status, &stored.CreatedAt)
	if err != nil {
		if verr := constraintError(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return &stored, nil
}

// List returns one page of submissions, most recent first. The projection
// deliberately excludes ip_address and user_agent.
func (s *ContactStore) List(ctx context.Context, filter types.ContactFilter) (*types.ContactPage, error) {
	filter.Normalize()

	where := ""
	args := []any{}
	if filter.Status != nil {
		where = "WHERE status = $1"
		args = append(args, *filter.Status)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM contacts %s", where)
	if err := s.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	listQuery := fmt.Sprintf(`
		SELECT id, name, email, message, status, created_at
		FROM contacts %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := s.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*types.Contact
	for rows.Next() {
		c := &types.Contact{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	pages := (total + filter.Limit - 1) / filter.Limit

	return &types.ContactPage{
		Contacts: contacts,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
		Pages:    pages,
	}, nil
}

// UpdateStatus sets the status of the matching record and returns it.
func (s *ContactStore) UpdateStatus(ctx context.Context, id string, status types.ContactStatus) (*types.Contact, error) {
	if !status.IsValid() {
		return nil, store.ErrInvalidStatus
	}

	query := `
		UPDATE contacts
		SET status = $1
		WHERE id = $2
		RETURNING id, name, email, message, status, created_at`

	c := &types.Contact{}
	err := s.db.QueryRow(ctx, query, status, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Message, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update contact status: %w", err)
	}

	return c, nil
}

// Delete removes the matching record.
func (s *ContactStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return store.ErrNotFound
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// isInvalidUUID reports whether err is PostgreSQL rejecting a malformed UUID
// literal. A syntactically invalid ID can never match a record, so callers
// treat it as a lookup miss.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// constraintError maps PostgreSQL constraint failures to the store's
// validation error, preserving the 400-vs-500 split for submissions that
// slipped past the request validator.
func constraintError(err error) *store.ConstraintViolationError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	// check_violation, not_null_violation, string_data_right_truncation
	case "23514", "23502", "22001":
		return &store.ConstraintViolationError{Violations: []string{pgErr.Message}}
	}
	return nil
}
