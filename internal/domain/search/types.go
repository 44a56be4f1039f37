package search

// Request encapsulates a recipe search query.
type Request struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
}

// Response is returned to the HTTP transport.
type Response struct {
	Query   string         `json:"query"`
	Page    int            `json:"page"`
	Results []RecipeResult `json:"results"`
	HasMore bool           `json:"has_more"`
}

// RecipeResult is one ranked entry in a result page. Score is the vector
// distance reported by the index, lower means closer.
type RecipeResult struct {
	Title string  `json:"title"`
	Link  string  `json:"link"`
	Score float64 `json:"score,omitempty"`
}

// Document is a recipe as stored in the vector index.
type Document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}
