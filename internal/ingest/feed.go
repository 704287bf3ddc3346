package ingest

import (
	"context"
	"log"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/rithythul/koompi-os/internal/knowledge"
)

// Feed is one recent-changes feed to watch.
type Feed struct {
	URL  string
	Name string
}

// RefreshFromFeeds re-fetches articles that appeared in the wiki
// recent-changes feeds and already exist locally, keeping stored
// copies in sync with upstream edits. New pages are not pulled in;
// that is a deliberate fetch decision, not a side effect of watching
// changes. Returns the number of articles refreshed.
func RefreshFromFeeds(ctx context.Context, st *knowledge.Store, fetcher *Fetcher, feeds []Feed, limit int) int {
	parser := gofeed.NewParser()
	count := 0

	for _, fc := range feeds {
		feed, err := parser.ParseURLWithContext(fc.URL, ctx)
		if err != nil {
			log.Printf("Failed to parse feed %s: %v", fc.URL, err)
			continue
		}

		for _, item := range feed.Items {
			title := strings.TrimSpace(item.Title)
			if title == "" || skipTitle(title) {
				continue
			}

			has, err := st.HasArticle(title, "archwiki")
			if err != nil {
				log.Printf("Lookup failed for %s: %v", title, err)
				continue
			}
			if !has {
				continue
			}

			content, err := fetcher.FetchArticle(ctx, title)
			if err != nil {
				log.Printf("Refresh failed for %s: %v", title, err)
				continue
			}
			if len(content) <= minArticleLength {
				continue
			}

			if _, err := st.AddArticle(title, content, categorize(title), "archwiki", articleURL(title)); err != nil {
				log.Printf("Failed to update %s: %v", title, err)
				continue
			}
			count++
			log.Printf("Refreshed: %s (via %s)", title, fc.Name)

			if limit > 0 && count >= limit {
				return count
			}
		}
	}

	return count
}
