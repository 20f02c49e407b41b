package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/formgate/contact-backend/errors"
	"github.com/formgate/contact-backend/services"
	"github.com/formgate/contact-backend/store"
	"github.com/formgate/contact-backend/types"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles the public submission endpoint and the admin
// list/update/delete surface. Submissions run through the workflow service;
// admin operations talk directly to the repository.
type ContactHandler struct {
	service      *services.ContactService
	contactStore store.ContactStore
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService, contactStore store.ContactStore) *ContactHandler {
	return &ContactHandler{
		service:      service,
		contactStore: contactStore,
	}
}

// bindJSONOrError binds JSON request body and sets a validation error if
// binding fails. Returns true if binding succeeded, false if an error was
// set (caller should return).
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return false
	}
	return true
}

// SubmitContact godoc
// @Summary      Submit the contact form
// @Description  Validates the submission, persists it and sends the notification emails
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      types.ContactCreate  true  "Submission payload"
// @Success      201   {object}  types.Response
// @Failure      400   {object}  types.Response
// @Failure      429   {object}  types.Response
// @Failure      500   {object}  types.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req types.ContactCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if msg, ok := req.Validate(); !ok {
		_ = c.Error(apperrors.ValidationFailed(msg, ""))
		return
	}

	contact := &types.Contact{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	stored, err := h.service.Submit(c.Request.Context(), contact)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, types.Response{
		Success: true,
		Message: "Your message has been sent successfully!",
		Data: types.SubmissionReceipt{
			ID:        stored.ID,
			Timestamp: stored.CreatedAt,
		},
	})
}

// ListContacts godoc
// @Summary      List contact submissions
// @Description  Returns a page of submissions, most recent first, optionally filtered by status
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "Filter by status (unread, read, replied)"
// @Param        page    query     int     false  "Page number (1-indexed)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  types.Response
// @Failure      500     {object}  types.Response
// @Router       /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	filter := types.ContactFilter{
		Page:  parseIntQuery(c, "page", 1),
		Limit: parseIntQuery(c, "limit", 10),
	}

	if raw := c.Query("status"); raw != "" && raw != "all" {
		status := types.ContactStatus(raw)
		if !status.IsValid() {
			_ = c.Error(apperrors.ValidationFailed("Invalid status filter", "status must be one of: unread, read, replied"))
			return
		}
		filter.Status = &status
	}

	page, err := h.contactStore.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	contacts := page.Contacts
	if contacts == nil {
		contacts = []*types.Contact{}
	}

	c.JSON(http.StatusOK, types.Response{
		Success: true,
		Data:    contacts,
		Pagination: &types.PageInfo{
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
			Pages: page.Pages,
		},
	})
}

// UpdateContactStatus godoc
// @Summary      Update submission status
// @Description  Sets the status of a submission to unread, read or replied
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Contact ID"
// @Param        body  body      types.ContactStatusUpdate  true  "New status"
// @Success      200   {object}  types.Response
// @Failure      400   {object}  types.Response
// @Failure      404   {object}  types.Response
// @Failure      500   {object}  types.Response
// @Router       /contacts/{id} [patch]
func (h *ContactHandler) UpdateContactStatus(c *gin.Context) {
	id := c.Param("id")

	var req types.ContactStatusUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	updated, err := h.contactStore.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidStatus):
			_ = c.Error(apperrors.ValidationFailed("Invalid status", "status must be one of: unread, read, replied"))
		case errors.Is(err, store.ErrNotFound):
			_ = c.Error(apperrors.NotFound("Contact", id))
		default:
			_ = c.Error(apperrors.NewDatabaseError(err))
		}
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Success: true,
		Data:    updated,
	})
}

// DeleteContact godoc
// @Summary      Delete a submission
// @Description  Removes a submission irrevocably
// @Tags         admin
// @Produce      json
// @Param        id  path      string  true  "Contact ID"
// @Success      200  {object}  types.Response
// @Failure      404  {object}  types.Response
// @Failure      500  {object}  types.Response
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	id := c.Param("id")

	if err := h.contactStore.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("Contact", id))
		} else {
			_ = c.Error(apperrors.NewDatabaseError(err))
		}
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Success: true,
		Message: "Contact deleted successfully",
	})
}

// parseIntQuery returns the named query parameter as a positive int, or the
// fallback when absent or malformed.
func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
