package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCreate() ContactCreate {
	return ContactCreate{
		Name:    "Ann",
		Email:   "ann@example.com",
		Message: "Hi",
	}
}

func TestContactCreate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ContactCreate)
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "valid payload",
			mutate: func(r *ContactCreate) {},
			wantOK: true,
		},
		{
			name:    "missing name",
			mutate:  func(r *ContactCreate) { r.Name = "" },
			wantOK:  false,
			wantMsg: "Name is required",
		},
		{
			name:    "whitespace-only name",
			mutate:  func(r *ContactCreate) { r.Name = "   " },
			wantOK:  false,
			wantMsg: "Name is required",
		},
		{
			name:    "missing email",
			mutate:  func(r *ContactCreate) { r.Email = "" },
			wantOK:  false,
			wantMsg: "Email is required",
		},
		{
			name:    "missing message",
			mutate:  func(r *ContactCreate) { r.Message = "" },
			wantOK:  false,
			wantMsg: "Message is required",
		},
		{
			name:    "name too long",
			mutate:  func(r *ContactCreate) { r.Name = strings.Repeat("a", 101) },
			wantOK:  false,
			wantMsg: "Name must be at most 100 characters",
		},
		{
			name:   "name at limit",
			mutate: func(r *ContactCreate) { r.Name = strings.Repeat("a", 100) },
			wantOK: true,
		},
		{
			name:    "message too long",
			mutate:  func(r *ContactCreate) { r.Message = strings.Repeat("m", 1001) },
			wantOK:  false,
			wantMsg: "Message must be at most 1000 characters",
		},
		{
			name:   "message at limit",
			mutate: func(r *ContactCreate) { r.Message = strings.Repeat("m", 1000) },
			wantOK: true,
		},
		{
			name:    "email without at sign",
			mutate:  func(r *ContactCreate) { r.Email = "ann.example.com" },
			wantOK:  false,
			wantMsg: "Email address is invalid",
		},
		{
			name:    "email without domain dot",
			mutate:  func(r *ContactCreate) { r.Email = "ann@example" },
			wantOK:  false,
			wantMsg: "Email address is invalid",
		},
		{
			name:    "email with long tld",
			mutate:  func(r *ContactCreate) { r.Email = "ann@example.technology" },
			wantOK:  false,
			wantMsg: "Email address is invalid",
		},
		{
			name:    "email with space",
			mutate:  func(r *ContactCreate) { r.Email = "ann smith@example.com" },
			wantOK:  false,
			wantMsg: "Email address is invalid",
		},
		{
			name:   "email with dots and hyphens",
			mutate: func(r *ContactCreate) { r.Email = "ann.smith-jones@mail.example.co" },
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)

			msg, ok := req.Validate()
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, tt.wantMsg, msg)
			}
		})
	}
}

func TestContactCreate_ValidateDoesNotMutate(t *testing.T) {
	req := ContactCreate{Name: "  Ann  ", Email: "ann@example.com", Message: "Hi"}
	before := req
	_, _ = req.Validate()
	assert.Equal(t, before, req)
}

func TestContactStatus_IsValid(t *testing.T) {
	assert.True(t, ContactStatusUnread.IsValid())
	assert.True(t, ContactStatusRead.IsValid())
	assert.True(t, ContactStatusReplied.IsValid())
	assert.False(t, ContactStatus("bogus").IsValid())
	assert.False(t, ContactStatus("").IsValid())
}

func TestContactFilter_Normalize(t *testing.T) {
	f := ContactFilter{}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.Limit)

	f = ContactFilter{Page: 3, Limit: 25}
	f.Normalize()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 25, f.Limit)
}
