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

type createProgramRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateProgram handles POST /api/programs.
func (h *Handlers) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req createProgramRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	in, verr := validate.Program(req.Name, req.Description)
	if verr != nil {
		httputil.ValidationFailed(w, verr.Field, verr.Reason)
		return
	}

	program, err := h.programs.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			httputil.Conflict(w, "a program with this name already exists")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	logger.Info("program created", "id", program.ID, "name", program.Name)
	httputil.Created(w, program)
}

// ListPrograms handles GET /api/programs.
func (h *Handlers) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.programs.List(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, programs)
}

// GetProgram handles GET /api/programs/{id}.
func (h *Handlers) GetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.BadRequest(w, "invalid program id")
		return
	}

	program, err := h.programs.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProgramNotFound) {
			httputil.NotFound(w, "program not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, program)
}
