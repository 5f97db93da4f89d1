package domain

// SearchOptions configures a provision search.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Zone restricts results to one legal zone.
	Zone LegalZone

	// DocumentID restricts results to one document.
	DocumentID string
}

// SearchResult represents a single matching provision.
type SearchResult struct {
	DocumentID    string    `json:"document_id"`
	DocumentTitle string    `json:"document_title"`
	Zone          LegalZone `json:"legal_zone"`
	ProvisionRef  string    `json:"provision_ref"`
	Title         string    `json:"title,omitempty"`
	Chapter       string    `json:"chapter,omitempty"`

	// Snippet is an excerpt around the matched terms.
	Snippet string `json:"snippet"`

	// Score is the relevance score; higher is better.
	Score float64 `json:"score"`
}

// SearchResponse carries results plus the query variant that produced them.
type SearchResponse struct {
	Query        string         `json:"query"`
	Variant      string         `json:"variant"`
	UsedFallback bool           `json:"used_fallback"`
	Results      []SearchResult `json:"results"`
}
