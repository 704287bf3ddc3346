package ingest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newFeedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const testHTMLPage = `<!DOCTYPE html>
<html>
<head><title>Understanding Pacman Hooks</title></head>
<body>
<article>
<h1>Understanding Pacman Hooks</h1>
<p>Pacman hooks let you run scripts before or after package transactions. They live in /etc/pacman.d/hooks and use a simple INI-style format with Trigger and Action sections. Hooks are a clean way to automate maintenance tasks that must follow package operations.</p>
<p>A common example is regenerating the initramfs after a kernel update, or pruning old package versions from the cache once an upgrade completes. Each hook declares what operations and targets it watches, and pacman runs the matching hooks in alphabetical order.</p>
<p>Hooks are also how KOOMPI OS wires snapshot creation into the update path, so every transaction gets a restore point without the user thinking about it. Writing your own hook only takes a few lines and makes routine maintenance disappear into the background.</p>
</article>
</body>
</html>`

func TestIngestURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testHTMLPage))
	}))
	defer srv.Close()

	st := openTestStore(t)

	title, err := IngestURL(st, srv.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("IngestURL failed: %v", err)
	}
	if !strings.Contains(title, "Pacman Hooks") {
		t.Errorf("unexpected title: %q", title)
	}

	articles, err := st.ListArticles()
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Source != "custom" {
		t.Errorf("source = %q, want web", articles[0].Source)
	}
	if !strings.Contains(articles[0].Content, "pacman.d/hooks") {
		t.Errorf("extracted content missing body text: %q", articles[0].Content)
	}
}

func TestIngestURLServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	st := openTestStore(t)
	if _, err := IngestURL(st, srv.URL, 5*time.Second); err == nil {
		t.Error("expected error on 404 response")
	}
}

func TestIngestURLNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>tiny</p></body></html>"))
	}))
	defer srv.Close()

	st := openTestStore(t)
	if _, err := IngestURL(st, srv.URL, 5*time.Second); err == nil {
		t.Error("expected error for page with no extractable content")
	}
}
