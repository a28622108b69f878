package recipes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/fitness-api/internal/config"
)

func testConfig(baseURL string) config.RecipesConfig {
	return config.RecipesConfig{
		BaseURL:        baseURL,
		TimeoutSeconds: 5,
		MaxResults:     5,
	}
}

func TestByCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/filter.php", r.URL.Path)
		assert.Equal(t, "Chicken", r.URL.Query().Get("i"))

		w.Write([]byte(`{"meals": [
			{"idMeal": "52940", "strMeal": "Brown Stew Chicken", "strMealThumb": "https://example.com/1.jpg"},
			{"idMeal": "52846", "strMeal": "Chicken Basquaise", "strMealThumb": "https://example.com/2.jpg", "strCategory": "Chicken"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	listing, err := c.ByCategory(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "Chicken", listing.Category)
	assert.Equal(t, 2, listing.Total)
	require.Len(t, listing.Recipes, 2)
	assert.Equal(t, Recipe{
		ID:       "52940",
		Name:     "Brown Stew Chicken",
		Image:    "https://example.com/1.jpg",
		Category: "General",
	}, listing.Recipes[0])
	assert.Equal(t, "Chicken", listing.Recipes[1].Category)
}

func TestByCategory_CapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"meals": [`)
		for i := 0; i < 8; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"idMeal": "%d", "strMeal": "Meal %d", "strMealThumb": ""}`, i, i)
		}
		fmt.Fprint(w, `]}`)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	listing, err := c.ByCategory(context.Background(), "Beef")
	require.NoError(t, err)
	assert.Equal(t, 5, listing.Total)
	assert.Len(t, listing.Recipes, 5)
}

func TestByCategory_NoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"meals": null}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	listing, err := c.ByCategory(context.Background(), "Unobtainium")
	require.NoError(t, err)
	assert.Equal(t, 0, listing.Total)
	assert.NotNil(t, listing.Recipes)
	assert.Empty(t, listing.Recipes)
	assert.Contains(t, listing.Message, "Unobtainium")
}

func TestByCategory_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))

	_, err := c.ByCategory(context.Background(), "Chicken")
	assert.Error(t, err)
}
