package knowledge

import (
	"fmt"
	"log"
	"math"
	"regexp"
	"strings"
)

// stopWords are dropped during query preparation. Articles, auxiliary
// verbs, and question words carry no ranking signal.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"how": {}, "do": {}, "i": {}, "to": {}, "what": {}, "can": {}, "you": {},
}

var punctRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// maxQueryTerms caps the number of terms in a prepared FTS query.
const maxQueryTerms = 10

// Search runs a ranked full-text match for query and returns up to limit
// results ordered by descending relevance. category, when non-empty,
// restricts matches to that category.
//
// The underlying bm25 ranking produces negative values where a larger
// magnitude means a stronger match; scores are normalized to their
// absolute value at this boundary so callers only ever see
// "larger score = better". If FTS rejects the prepared query, Search
// falls back to a substring match instead of returning an error.
func (s *Store) Search(query string, limit int, category string) ([]SearchResult, error) {
	results, err := s.ftsSearch(prepareQuery(query), limit, category)
	if err != nil {
		// FTS rejected the query syntax. Degrade to substring matching
		// rather than surfacing the error.
		log.Printf("FTS search failed, falling back to substring match: %v", err)
		return s.fallbackSearch(query, limit, category)
	}
	return results, nil
}

func (s *Store) ftsSearch(ftsQuery string, limit int, category string) ([]SearchResult, error) {
	sqlQuery := `
		SELECT a.id, a.title, a.content, a.category, a.source, a.url, a.last_updated,
			bm25(articles_fts) AS score,
			snippet(articles_fts, 1, '<mark>', '</mark>', '...', 64) AS snippet
		FROM articles_fts
		JOIN articles a ON articles_fts.rowid = a.id
		WHERE articles_fts MATCH ?`
	args := []any{ftsQuery}
	if category != "" {
		sqlQuery += " AND a.category = ?"
		args = append(args, category)
	}
	sqlQuery += " ORDER BY score LIMIT ?"
	args = append(args, limit)

	rows, err := s.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var a Article
		var score float64
		var snippet string
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.Source,
			&a.URL, &a.LastUpdated, &score, &snippet); err != nil {
			return nil, err
		}
		results = append(results, SearchResult{
			Article: a,
			Score:   math.Abs(score),
			Snippet: snippet,
		})
	}
	return results, rows.Err()
}

// prepareQuery converts a natural-language query into an FTS5 query:
// punctuation stripped, lower-cased, stop words and single characters
// dropped, at most maxQueryTerms terms joined with OR as prefix matches.
// If nothing survives filtering, the lower-cased original is passed
// through so the query never silently matches everything.
func prepareQuery(query string) string {
	cleaned := punctRe.ReplaceAllString(query, " ")

	var terms []string
	for _, w := range strings.Fields(strings.ToLower(cleaned)) {
		if len(w) <= 1 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		terms = append(terms, fmt.Sprintf(`"%s"*`, w))
		if len(terms) == maxQueryTerms {
			break
		}
	}

	if len(terms) == 0 {
		return strings.ToLower(query)
	}
	return strings.Join(terms, " OR ")
}

// fallbackSearch matches the first 5 words of the original query as
// substrings against title and content. Scores carry no ranking signal
// and are a constant.
func (s *Store) fallbackSearch(query string, limit int, category string) ([]SearchResult, error) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) > 5 {
		words = words[:5]
	}
	if len(words) == 0 {
		return nil, nil
	}

	conds := make([]string, len(words))
	var args []any
	for i, w := range words {
		conds[i] = "(title LIKE ? OR content LIKE ?)"
		pat := "%" + w + "%"
		args = append(args, pat, pat)
	}

	sqlQuery := `SELECT id, title, content, category, source, url, last_updated
		FROM articles WHERE (` + strings.Join(conds, " OR ") + `)`
	if category != "" {
		sqlQuery += " AND category = ?"
		args = append(args, category)
	}
	sqlQuery += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.conn.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("fallback search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &a.Source,
			&a.URL, &a.LastUpdated); err != nil {
			return nil, err
		}

		snippet := fallbackSnippet(a.Content, words)
		if len(a.Content) > 500 {
			a.Content = a.Content[:500] + "..."
		}
		results = append(results, SearchResult{
			Article: a,
			Score:   1.0,
			Snippet: snippet,
		})
	}
	return results, rows.Err()
}

// fallbackSnippet extracts a window around the first occurrence of any
// query word, or the content prefix if none is found.
func fallbackSnippet(content string, words []string) string {
	lower := strings.ToLower(content)
	for _, w := range words {
		idx := strings.Index(lower, w)
		if idx >= 0 {
			start := idx - 50
			if start < 0 {
				start = 0
			}
			end := idx + 100
			if end > len(content) {
				end = len(content)
			}
			return "..." + content[start:end] + "..."
		}
	}
	if len(content) > 150 {
		return content[:150] + "..."
	}
	return content + "..."
}
