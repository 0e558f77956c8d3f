package reddit

// listing represents the reddit ranked-listing response structure.
type listing struct {
	Data listingData `json:"data"`
}

type listingData struct {
	Children []child `json:"children"`
}

type child struct {
	Data post `json:"data"`
}

type post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Author    string `json:"author"`
	Subreddit string `json:"subreddit"`
	Thumbnail string `json:"thumbnail"`
}
