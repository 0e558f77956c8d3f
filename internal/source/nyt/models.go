package nyt

// apiResponse represents the NYT most-popular API response structure.
type apiResponse struct {
	Status     string   `json:"status"`
	NumResults int      `json:"num_results"`
	Results    []result `json:"results"`
}

type result struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	PublishedDate string `json:"published_date"`
	Byline        string `json:"byline"`
	Section       string `json:"section"`
}
