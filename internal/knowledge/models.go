package knowledge

// Article is a stored unit of documentation text.
type Article struct {
	ID          int64
	Title       string
	Content     string
	Category    string // e.g. "package_management", "filesystem"
	Source      string // "archwiki", "koompi", "custom"
	URL         *string
	LastUpdated *string
}

// SearchResult is one ranked match from a search. Score is normalized so
// that a larger value always means a stronger match, regardless of the
// sign convention of the underlying ranking function.
type SearchResult struct {
	Article Article
	Score   float64
	Snippet string
}

// Stats contains aggregate store statistics.
type Stats struct {
	TotalArticles int
	BySource      map[string]int
	ByCategory    map[string]int
	SizeBytes     int64
}
