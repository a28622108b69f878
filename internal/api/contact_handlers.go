package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/fitness-api/internal/pkg/httputil"
	"github.com/ignite/fitness-api/internal/pkg/logger"
	"github.com/ignite/fitness-api/internal/repository"
	"github.com/ignite/fitness-api/internal/validate"
)

type createContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type linkProgramRequest struct {
	ProgramID int `json:"program_id"`
}

// CreateContact handles POST /api/contacts.
func (h *Handlers) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	in, verr := validate.Contact(req.Name, req.Email, req.Message)
	if verr != nil {
		httputil.ValidationFailed(w, verr.Field, verr.Reason)
		return
	}

	contact, err := h.contacts.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			httputil.Conflict(w, "a contact with this email already exists")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	logger.Info("contact created", "id", contact.ID, "email", contact.Email)
	httputil.Created(w, contact)
}

// ListContacts handles GET /api/contacts with page/limit pagination.
func (h *Handlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	offset, limit := pagination(r)

	contacts, err := h.contacts.List(r.Context(), offset, limit)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, contacts)
}

// GetContact handles GET /api/contacts/{id}.
func (h *Handlers) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.BadRequest(w, "invalid contact id")
		return
	}

	contact, err := h.contacts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			httputil.NotFound(w, "contact not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, contact)
}

// LinkProgram handles POST /api/contacts/{id}/programs. Re-linking the same
// pair succeeds without effect.
func (h *Handlers) LinkProgram(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.BadRequest(w, "invalid contact id")
		return
	}

	var req linkProgramRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.ProgramID <= 0 {
		httputil.BadRequest(w, "program_id is required")
		return
	}

	if err := h.contacts.Link(r.Context(), id, req.ProgramID); err != nil {
		switch {
		case errors.Is(err, repository.ErrContactNotFound):
			httputil.NotFound(w, "contact not found")
		case errors.Is(err, repository.ErrProgramNotFound):
			httputil.NotFound(w, "program not found")
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	httputil.NoContent(w)
}
