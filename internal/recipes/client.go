// Package recipes proxies recipe lookups to TheMealDB, which needs no API
// key for the basic filter endpoint.
package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ignite/fitness-api/internal/config"
	"github.com/ignite/fitness-api/internal/pkg/httpretry"
)

// DefaultCategory is used when a lookup omits the ingredient category.
const DefaultCategory = "Chicken"

// Client is the TheMealDB client.
type Client struct {
	baseURL    string
	maxResults int
	http       httpretry.HTTPDoer
}

// NewClient creates a recipes client from configuration.
func NewClient(cfg config.RecipesConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		maxResults: cfg.MaxResults,
		http:       httpretry.New(&http.Client{Timeout: cfg.Timeout()}, 2),
	}
}

// ByCategory returns up to maxResults recipes whose main ingredient matches
// the category. An upstream empty match is not an error; the listing comes
// back empty with an explanatory message.
func (c *Client) ByCategory(ctx context.Context, category string) (*Listing, error) {
	if category == "" {
		category = DefaultCategory
	}

	params := url.Values{}
	params.Set("i", category)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/filter.php?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recipes request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read recipes response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("recipes API %d: %s", resp.StatusCode, string(body))
	}

	var data filterResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parse recipes response: %w", err)
	}

	listing := &Listing{Category: category, Recipes: []Recipe{}}
	if len(data.Meals) == 0 {
		listing.Message = fmt.Sprintf("no recipes found for %s", category)
		return listing, nil
	}

	meals := data.Meals
	if len(meals) > c.maxResults {
		meals = meals[:c.maxResults]
	}
	for _, m := range meals {
		cat := m.StrCategory
		if cat == "" {
			cat = "General"
		}
		listing.Recipes = append(listing.Recipes, Recipe{
			ID:       m.IDMeal,
			Name:     m.StrMeal,
			Image:    m.StrMealThumb,
			Category: cat,
		})
	}
	listing.Total = len(listing.Recipes)
	listing.Message = fmt.Sprintf("recipes found for %s", category)
	return listing, nil
}
