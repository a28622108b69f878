package recipes

// Recipe is one reshaped result served to API clients.
type Recipe struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// Listing is the envelope returned by a category lookup.
type Listing struct {
	Category string   `json:"category"`
	Total    int      `json:"total"`
	Recipes  []Recipe `json:"recipes"`
	Message  string   `json:"message"`
}

// filterResponse covers the fields we read from the upstream payload. Meals
// is null upstream when nothing matches.
type filterResponse struct {
	Meals []struct {
		IDMeal       string `json:"idMeal"`
		StrMeal      string `json:"strMeal"`
		StrMealThumb string `json:"strMealThumb"`
		StrCategory  string `json:"strCategory"`
	} `json:"meals"`
}
