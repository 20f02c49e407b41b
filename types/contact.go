package types

import (
	"regexp"
	"strings"
	"time"
)

// ContactStatus tracks how far the site owner has gotten with a submission.
// Transitions are unconstrained; any status may move to any other.
type ContactStatus string

const (
	ContactStatusUnread  ContactStatus = "unread"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

// IsValid reports whether the status is one of the known values.
func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusUnread, ContactStatusRead, ContactStatusReplied:
		return true
	}
	return false
}

// UnknownUserAgent is stored when the client sends no User-Agent header.
const UnknownUserAgent = "Unknown"

// Field constraints enforced at validation and re-checked at the storage
// boundary.
const (
	MaxNameLength    = 100
	MaxMessageLength = 1000
)

// Shallow syntactic check: word characters, dots and hyphens in local part and
// domain, final domain segment of 2-3 letters. Not full RFC 5322 validation.
var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[A-Za-z]{2,3}$`)

// Contact represents a stored contact-form submission. IPAddress and
// UserAgent are captured server-side and never serialized in API responses.
type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	IPAddress string        `json:"-"`
	UserAgent string        `json:"-"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// ContactCreate represents the request body for submitting the contact form.
type ContactCreate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks presence, length bounds and email shape. It is a pure
// check: no I/O, and the receiver is not mutated. The first failing rule is
// reported; each rule is enforced independently.
func (r *ContactCreate) Validate() (string, bool) {
	if strings.TrimSpace(r.Name) == "" {
		return "Name is required", false
	}
	if strings.TrimSpace(r.Email) == "" {
		return "Email is required", false
	}
	if strings.TrimSpace(r.Message) == "" {
		return "Message is required", false
	}
	if len(r.Name) > MaxNameLength {
		return "Name must be at most 100 characters", false
	}
	if len(r.Message) > MaxMessageLength {
		return "Message must be at most 1000 characters", false
	}
	if !emailPattern.MatchString(r.Email) {
		return "Email address is invalid", false
	}
	return "", true
}

// ContactStatusUpdate represents the request body for the admin status update.
type ContactStatusUpdate struct {
	Status ContactStatus `json:"status" binding:"required"`
}

// ContactFilter narrows and pages the admin list operation. A nil Status
// means all statuses. Page and Limit are 1-indexed and default to 1/10.
type ContactFilter struct {
	Status *ContactStatus
	Page   int
	Limit  int
}

// Normalize applies the documented pagination defaults.
func (f *ContactFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
}

// ContactPage is one page of submissions plus pagination totals as computed
// by the repository.
type ContactPage struct {
	Contacts []*Contact
	Total    int
	Page     int
	Limit    int
	Pages    int
}

// SubmissionReceipt is the success payload returned for a new submission.
type SubmissionReceipt struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}
