package clicks

import "time"

// Click is a single click-through event on a search result.
type Click struct {
	Query string `json:"query"`
	Link  string `json:"link"`
}

// Record is the persisted form of a click, one per (query, link) pair.
type Record struct {
	Query         string    `json:"query"`
	Link          string    `json:"link"`
	Count         int64     `json:"count"`
	LastClickedAt time.Time `json:"lastClickedAt"`
}

// TopLink is an aggregate entry for the most clicked links.
type TopLink struct {
	Link  string `json:"link"`
	Count int64  `json:"count"`
}
