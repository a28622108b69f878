// Package api is the HTTP façade: chi routes, request decoding, status
// mapping and the middleware stack. Handlers depend on small interfaces so
// tests can swap in fakes without a database or live upstreams.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ignite/fitness-api/internal/domain"
	"github.com/ignite/fitness-api/internal/pkg/httputil"
	"github.com/ignite/fitness-api/internal/recipes"
	"github.com/ignite/fitness-api/internal/validate"
	"github.com/ignite/fitness-api/internal/weather"
)

// ContactStore is the contact persistence surface the handlers need.
type ContactStore interface {
	Create(ctx context.Context, in validate.ContactInput) (*domain.Contact, error)
	List(ctx context.Context, offset, limit int) ([]domain.Contact, error)
	GetByID(ctx context.Context, id int) (*domain.Contact, error)
	Link(ctx context.Context, contactID, programID int) error
}

// ProgramStore is the program persistence surface the handlers need.
type ProgramStore interface {
	Create(ctx context.Context, in validate.ProgramInput) (*domain.Program, error)
	List(ctx context.Context) ([]domain.Program, error)
	GetByID(ctx context.Context, id int) (*domain.Program, error)
}

// WeatherProvider fetches current conditions for a city.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (*weather.Report, error)
}

// RecipeProvider fetches recipes for an ingredient category.
type RecipeProvider interface {
	ByCategory(ctx context.Context, category string) (*recipes.Listing, error)
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	contacts ContactStore
	programs ProgramStore
	weather  WeatherProvider
	recipes  RecipeProvider
	started  time.Time
}

// NewHandlers creates a new Handlers instance. The weather and recipe
// providers may be nil; their routes then answer 502.
func NewHandlers(contacts ContactStore, programs ProgramStore, weather WeatherProvider, recipes RecipeProvider) *Handlers {
	return &Handlers{
		contacts: contacts,
		programs: programs,
		weather:  weather,
		recipes:  recipes,
		started:  time.Now(),
	}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
