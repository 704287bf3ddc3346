package ingest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/rithythul/koompi-os/internal/knowledge"
)

// wikiPage is one <page> element of a MediaWiki export dump.
type wikiPage struct {
	Title string `xml:"title"`
	Text  string `xml:"revision>text"`
}

// ImportXML streams a MediaWiki XML dump into the store. Non-article
// namespaces and pages under the minimum length are skipped. A limit
// of 0 imports everything.
func ImportXML(st *knowledge.Store, path string, limit int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	log.Printf("Parsing MediaWiki XML from %s", path)

	dec := xml.NewDecoder(f)
	count := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, fmt.Errorf("parsing XML: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "page" {
			continue
		}

		var page wikiPage
		if err := dec.DecodeElement(&page, &se); err != nil {
			log.Printf("Skipping malformed page: %v", err)
			continue
		}

		if page.Title == "" || skipTitle(page.Title) {
			continue
		}

		content := cleanWikitext(page.Text)
		if len(content) <= minArticleLength {
			continue
		}

		category := categorize(page.Title)
		if _, err := st.AddArticle(page.Title, content, category, "archwiki", articleURL(page.Title)); err != nil {
			log.Printf("Failed to add %q: %v", page.Title, err)
			continue
		}

		count++
		if count%100 == 0 {
			log.Printf("Imported %d articles...", count)
		}
		if limit > 0 && count >= limit {
			break
		}
	}

	log.Printf("Imported %d articles from XML", count)
	return count, nil
}
