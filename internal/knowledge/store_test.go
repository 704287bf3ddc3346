package knowledge

import (
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "knowledge.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddArticle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.AddArticle("Pacman", "Pacman is the package manager.", "package_management", "archwiki", "https://wiki.archlinux.org/title/Pacman")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero article ID")
	}

	a, err := store.GetArticle(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == nil {
		t.Fatal("expected article")
	}
	if a.Title != "Pacman" {
		t.Errorf("expected title 'Pacman', got %q", a.Title)
	}
	if a.Category != "package_management" {
		t.Errorf("expected category 'package_management', got %q", a.Category)
	}
	if a.LastUpdated == nil {
		t.Error("expected last_updated to be set")
	}
}

func TestAddArticleDefaults(t *testing.T) {
	store := openTestStore(t)

	id, err := store.AddArticle("Notes", "Some notes.", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := store.GetArticle(id)
	if a.Category != "general" {
		t.Errorf("expected default category 'general', got %q", a.Category)
	}
	if a.Source != "custom" {
		t.Errorf("expected default source 'custom', got %q", a.Source)
	}
	if a.URL != nil {
		t.Errorf("expected nil URL, got %q", *a.URL)
	}
}

func TestUpsertByTitleAndSource(t *testing.T) {
	store := openTestStore(t)

	first, err := store.AddArticle("Pacman", "Old content.", "general", "archwiki", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.AddArticle("Pacman", "New content.", "package_management", "archwiki", "https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected upsert to keep ID %d, got %d", first, second)
	}

	stats, _ := store.GetStats()
	if stats.TotalArticles != 1 {
		t.Errorf("expected exactly 1 article after upsert, got %d", stats.TotalArticles)
	}

	a, _ := store.GetArticle(first)
	if a.Content != "New content." {
		t.Errorf("expected updated content, got %q", a.Content)
	}
	if a.Category != "package_management" {
		t.Errorf("expected updated category, got %q", a.Category)
	}
}

func TestSameTitleDifferentSource(t *testing.T) {
	store := openTestStore(t)

	store.AddArticle("Snapshots", "ArchWiki snapshots.", "filesystem", "archwiki", "")
	store.AddArticle("Snapshots", "KOOMPI snapshots.", "koompi", "koompi", "")

	stats, _ := store.GetStats()
	if stats.TotalArticles != 2 {
		t.Errorf("expected 2 articles for distinct sources, got %d", stats.TotalArticles)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	store := openTestStore(t)

	a, err := store.GetArticle(999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != nil {
		t.Error("expected nil for missing article")
	}
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalArticles != 0 {
		t.Errorf("expected 0 articles, got %d", stats.TotalArticles)
	}

	store.AddArticle("A", "content a", "system", "archwiki", "")
	store.AddArticle("B", "content b", "system", "koompi", "")
	store.AddArticle("C", "content c", "desktop", "koompi", "")

	stats, _ = store.GetStats()
	if stats.TotalArticles != 3 {
		t.Errorf("expected 3 articles, got %d", stats.TotalArticles)
	}
	if stats.BySource["koompi"] != 2 {
		t.Errorf("expected 2 koompi articles, got %d", stats.BySource["koompi"])
	}
	if stats.ByCategory["system"] != 2 {
		t.Errorf("expected 2 system articles, got %d", stats.ByCategory["system"])
	}
	if stats.SizeBytes == 0 {
		t.Error("expected non-zero database size")
	}
}

func TestHasArticle(t *testing.T) {
	store := openTestStore(t)
	store.AddArticle("Pacman", "content", "package_management", "archwiki", "")

	ok, err := store.HasArticle("Pacman", "archwiki")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected article to exist")
	}

	ok, _ = store.HasArticle("Pacman", "koompi")
	if ok {
		t.Error("expected no article for different source")
	}
}

func TestSeed(t *testing.T) {
	store := openTestStore(t)

	if err := store.Seed(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, _ := store.GetStats()
	if stats.TotalArticles == 0 {
		t.Fatal("expected seeded articles")
	}
	if stats.BySource["archwiki"] == 0 {
		t.Error("expected archwiki articles")
	}
	if stats.BySource["koompi"] == 0 {
		t.Error("expected koompi articles")
	}

	// Seeding again must not create duplicates.
	before := stats.TotalArticles
	if err := store.Seed(); err != nil {
		t.Fatalf("unexpected error on reseed: %v", err)
	}
	stats, _ = store.GetStats()
	if stats.TotalArticles != before {
		t.Errorf("expected %d articles after reseed, got %d", before, stats.TotalArticles)
	}
}

func TestSeededSearchFindsPacman(t *testing.T) {
	store := openTestStore(t)
	store.Seed()

	results, err := store.Search("how do I install packages with pacman", 5, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}

	found := false
	for _, r := range results {
		if strings.Contains(r.Article.Title, "Pacman") {
			found = true
		}
	}
	if !found {
		t.Error("expected a Pacman article in the results")
	}
}
