package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/rithythul/koompi-os/internal/knowledge"
)

// EssentialArticles are the ArchWiki pages most relevant to KOOMPI OS
// users, fetched by 'koompi ingest fetch --essential'.
var EssentialArticles = []string{
	"Pacman",
	"Pacman/Tips_and_tricks",
	"Arch_User_Repository",
	"Systemd",
	"Btrfs",
	"Snapper",
	"Network_configuration",
	"NetworkManager",
	"Users_and_groups",
	"Sudo",
	"SSH",
	"Desktop_environment",
	"KDE",
	"GNOME",
	"Xfce",
	"Sway",
	"Hyprland",
	"i3",
	"Flatpak",
	"Installation_guide",
	"General_recommendations",
	"System_maintenance",
	"Kernel",
	"Mkinitcpio",
	"GRUB",
	"Systemd-boot",
	"Fstab",
	"File_systems",
	"Partitioning",
	"USB_flash_installation_medium",
	"Archiso",
}

const defaultWikiAPIURL = "https://wiki.archlinux.org/api.php"

// Fetcher retrieves article wikitext from a MediaWiki API.
type Fetcher struct {
	APIURL string
	client *http.Client
}

// NewFetcher creates a wiki fetcher. An empty apiURL selects ArchWiki.
func NewFetcher(apiURL string) *Fetcher {
	if apiURL == "" {
		apiURL = defaultWikiAPIURL
	}
	return &Fetcher{
		APIURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchArticle fetches one article by title and returns its cleaned
// content.
func (f *Fetcher) FetchArticle(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":  {"query"},
		"titles":  {title},
		"prop":    {"revisions"},
		"rvprop":  {"content"},
		"rvslots": {"main"},
		"format":  {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, "GET", f.APIURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "koompi-assistant/1.0 (knowledge ingestion)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wiki API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wiki API returned %d", resp.StatusCode)
	}

	var result struct {
		Query struct {
			Pages map[string]struct {
				Revisions []struct {
					Slots struct {
						Main struct {
							Content string `json:"*"`
						} `json:"main"`
					} `json:"slots"`
				} `json:"revisions"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding wiki response: %w", err)
	}

	for pageID, page := range result.Query.Pages {
		if pageID == "-1" {
			return "", fmt.Errorf("article %q not found", title)
		}
		if len(page.Revisions) > 0 {
			return cleanWikitext(page.Revisions[0].Slots.Main.Content), nil
		}
	}

	return "", fmt.Errorf("no revisions for %q", title)
}

// FetchInto fetches the given titles and stores those long enough to
// be useful. Returns the number stored; failures are logged and
// skipped.
func (f *Fetcher) FetchInto(ctx context.Context, st *knowledge.Store, titles []string) int {
	count := 0
	for _, title := range titles {
		log.Printf("Fetching: %s", title)
		content, err := f.FetchArticle(ctx, title)
		if err != nil {
			log.Printf("Skipped %s: %v", title, err)
			continue
		}
		if len(content) <= minArticleLength {
			log.Printf("Skipped %s: too short", title)
			continue
		}

		category := categorize(title)
		if _, err := st.AddArticle(title, content, category, "archwiki", articleURL(title)); err != nil {
			log.Printf("Failed to add %s: %v", title, err)
			continue
		}
		count++
		log.Printf("Added %s (%s)", title, category)
	}
	return count
}
