package knowledge

import "strings"

// contextSearchLimit is the fixed number of results considered when
// assembling context.
const contextSearchLimit = 5

// charsPerToken approximates tokens as 4 characters each.
const charsPerToken = 4

// BuildContext assembles a reference-documentation block from the top
// search results for query, bounded by roughly maxTokens. Entries are
// added in score order and assembly stops as soon as the next entry
// would exceed the budget. Returns an empty string and no results when
// nothing matches.
func (s *Store) BuildContext(query string, maxTokens int) (string, []SearchResult, error) {
	results, err := s.Search(query, contextSearchLimit, "")
	if err != nil {
		return "", nil, err
	}
	if len(results) == 0 {
		return "", nil, nil
	}

	parts := []string{"## Relevant Documentation\n"}
	maxChars := maxTokens * charsPerToken
	charCount := 0

	var used []SearchResult
	for _, r := range results {
		entry := "\n### " + r.Article.Title
		if r.Article.Source == "archwiki" {
			entry += " (ArchWiki)"
		}
		entry += "\n"

		remaining := maxChars - charCount - len(entry)
		if remaining <= 0 {
			break
		}

		content := r.Article.Content
		if len(content) > remaining {
			content = content[:remaining] + "..."
		}
		entry += content + "\n"

		parts = append(parts, entry)
		used = append(used, r)
		charCount += len(entry)

		if charCount >= maxChars {
			break
		}
	}

	return strings.Join(parts, "\n"), used, nil
}

// Titles returns the article titles of the given results, in order.
func Titles(results []SearchResult) []string {
	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Article.Title
	}
	return titles
}
