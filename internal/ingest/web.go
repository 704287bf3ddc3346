package ingest

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/rithythul/koompi-os/internal/knowledge"
)

// IngestURL fetches a web page, extracts its readable text, and stores
// it with source "custom". Returns the stored article title.
func IngestURL(st *knowledge.Store, pageURL string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "koompi-assistant/1.0 (knowledge ingestion)")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetching page: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("extracting content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) <= minArticleLength {
		return "", fmt.Errorf("no extractable content at %s", pageURL)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		if parsedURL != nil {
			title = parsedURL.Host
		} else {
			title = pageURL
		}
	}

	if _, err := st.AddArticle(title, text, categorize(title), "custom", pageURL); err != nil {
		return "", fmt.Errorf("storing article: %w", err)
	}
	return title, nil
}
