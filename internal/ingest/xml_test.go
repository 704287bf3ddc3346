package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDump = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/">
  <page>
    <title>Pacman</title>
    <revision>
      <text>'''Pacman''' is the package manager of Arch Linux. It combines a simple binary package format with an easy-to-use build system. Pacman keeps the system up to date by synchronizing package lists with the master server.</text>
    </revision>
  </page>
  <page>
    <title>User:Somebody</title>
    <revision>
      <text>This user page is long enough to pass the length filter but lives in an excluded namespace so it must never be imported into the knowledge store at all.</text>
    </revision>
  </page>
  <page>
    <title>Stub</title>
    <revision>
      <text>Too short.</text>
    </revision>
  </page>
  <page>
    <title>Btrfs</title>
    <revision>
      <text>'''Btrfs''' is a modern copy-on-write filesystem for Linux aimed at implementing advanced features while also focusing on fault tolerance, repair and easy administration. Snapshots are cheap.</text>
    </revision>
  </page>
</mediawiki>`

func writeDump(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.xml")
	if err := os.WriteFile(path, []byte(testDump), 0o644); err != nil {
		t.Fatalf("failed to write dump: %v", err)
	}
	return path
}

func TestImportXML(t *testing.T) {
	st := openTestStore(t)

	count, err := ImportXML(st, writeDump(t), 0)
	if err != nil {
		t.Fatalf("ImportXML failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 imported articles, got %d", count)
	}

	articles, err := st.ListArticles()
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	byTitle := map[string]bool{}
	for _, a := range articles {
		byTitle[a.Title] = true
		if a.Source != "archwiki" {
			t.Errorf("article %q source = %q, want archwiki", a.Title, a.Source)
		}
		if a.Title == "Pacman" && !strings.Contains(a.Content, "**Pacman**") {
			t.Errorf("wikitext not cleaned: %q", a.Content)
		}
	}
	if !byTitle["Pacman"] || !byTitle["Btrfs"] {
		t.Errorf("missing expected articles, got %v", byTitle)
	}
	if byTitle["User:Somebody"] {
		t.Error("excluded namespace was imported")
	}
	if byTitle["Stub"] {
		t.Error("short article was imported")
	}
}

func TestImportXMLLimit(t *testing.T) {
	st := openTestStore(t)

	count, err := ImportXML(st, writeDump(t), 1)
	if err != nil {
		t.Fatalf("ImportXML failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 imported article with limit, got %d", count)
	}
}

func TestImportXMLMissingFile(t *testing.T) {
	st := openTestStore(t)

	if _, err := ImportXML(st, "/does/not/exist.xml", 0); err == nil {
		t.Error("expected error for missing dump file")
	}
}
