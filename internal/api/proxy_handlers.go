package api

import (
	"net/http"
	"sync"

	"github.com/ignite/fitness-api/internal/pkg/httputil"
	"github.com/ignite/fitness-api/internal/pkg/logger"
	"github.com/ignite/fitness-api/internal/recipes"
	"github.com/ignite/fitness-api/internal/weather"
)

// GetWeather handles GET /api/weather?city=.
func (h *Handlers) GetWeather(w http.ResponseWriter, r *http.Request) {
	if h.weather == nil {
		httputil.BadGateway(w, "weather service is not configured")
		return
	}

	report, err := h.weather.Current(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		logger.Warn("weather lookup failed", "error", err.Error())
		httputil.BadGateway(w, "weather lookup failed")
		return
	}
	httputil.OK(w, report)
}

// GetRecipes handles GET /api/recipes?category=.
func (h *Handlers) GetRecipes(w http.ResponseWriter, r *http.Request) {
	if h.recipes == nil {
		httputil.BadGateway(w, "recipes service is not configured")
		return
	}

	listing, err := h.recipes.ByCategory(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		logger.Warn("recipes lookup failed", "error", err.Error())
		httputil.BadGateway(w, "recipes lookup failed")
		return
	}
	httputil.OK(w, listing)
}

type dashboardResponse struct {
	Weather      *weather.Report  `json:"weather,omitempty"`
	WeatherError string           `json:"weather_error,omitempty"`
	Recipes      *recipes.Listing `json:"recipes,omitempty"`
	RecipesError string           `json:"recipes_error,omitempty"`
}

// GetDashboard handles GET /api/dashboard?city&category. Both providers are
// queried concurrently; one failing does not hide the other's result. Only
// when both fail does the request itself fail.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	city := r.URL.Query().Get("city")
	category := r.URL.Query().Get("category")

	var resp dashboardResponse
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		if h.weather == nil {
			resp.WeatherError = "weather service is not configured"
			return
		}
		report, err := h.weather.Current(ctx, city)
		if err != nil {
			logger.Warn("dashboard weather failed", "error", err.Error())
			resp.WeatherError = "weather lookup failed"
			return
		}
		resp.Weather = report
	}()
	go func() {
		defer wg.Done()
		if h.recipes == nil {
			resp.RecipesError = "recipes service is not configured"
			return
		}
		listing, err := h.recipes.ByCategory(ctx, category)
		if err != nil {
			logger.Warn("dashboard recipes failed", "error", err.Error())
			resp.RecipesError = "recipes lookup failed"
			return
		}
		resp.Recipes = listing
	}()
	wg.Wait()

	if resp.Weather == nil && resp.Recipes == nil {
		httputil.BadGateway(w, "all dashboard providers failed")
		return
	}
	httputil.OK(w, resp)
}
