package models

import "time"

// NewsArticle is a normalized article from the news provider.
// ID is derived from the fetch time and position so it is not stable across requests.
// PublishedAt is the provider's timestamp string, passed through unparsed.
type NewsArticle struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	Source          string    `json:"source"`
	PublishedAt     string    `json:"publishedAt"`
	URL             string    `json:"url"`
	Sentiment       string    `json:"sentiment"`
	RelevantSymbols []string  `json:"relevantSymbols"`
}

// NewsQuery describes a keyword search against the news provider.
type NewsQuery struct {
	Query    string
	PageSize int
	Lookback time.Duration
}

// NewsPage is a filtered page of articles plus the provider's total count.
type NewsPage struct {
	Articles []NewsArticle `json:"articles"`
	Total    int           `json:"total"`
}
