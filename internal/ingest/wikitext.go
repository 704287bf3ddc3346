// Package ingest loads ArchWiki and web content into the knowledge
// store: a built-in seed set, MediaWiki XML dumps, direct wiki API
// fetches, recent-changes feed refreshes, and readability-extracted
// web pages. All paths funnel into the same AddArticle contract.
package ingest

import (
	"html"
	"regexp"
	"strings"
)

// Articles shorter than this after cleanup are noise, not documentation.
const minArticleLength = 100

// wikitextRules converts MediaWiki markup to readable markdown-ish
// text. Rules run in order: code templates first, then wiki lists
// before headers (so '#' list markers cannot eat the markdown headers
// produced by the header rules), then metadata links before the
// generic link conversion.
var wikitextRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?s)<!--.*?-->`), ""},

	{regexp.MustCompile(`\{\{ic\|([^}]+)\}\}`), "`$1`"},
	{regexp.MustCompile(`\{\{bc\|([^}]+)\}\}`), "```\n$1\n```"},
	{regexp.MustCompile(`<code>([^<]+)</code>`), "`$1`"},
	{regexp.MustCompile(`(?s)<pre>([^<]+)</pre>`), "```\n$1\n```"},
	{regexp.MustCompile(`(?s)<syntaxhighlight[^>]*>([^<]+)</syntaxhighlight>`), "```\n$1\n```"},

	{regexp.MustCompile(`(?m)^\*\*\*\*`), "        -"},
	{regexp.MustCompile(`(?m)^\*\*\*`), "      -"},
	{regexp.MustCompile(`(?m)^\*\*`), "    -"},
	{regexp.MustCompile(`(?m)^\*`), "-"},
	{regexp.MustCompile(`(?m)^####`), "        1."},
	{regexp.MustCompile(`(?m)^###`), "      1."},
	{regexp.MustCompile(`(?m)^##`), "    1."},
	{regexp.MustCompile(`(?m)^#([^#])`), "1.$1"},

	{regexp.MustCompile(`(?m)^======\s*([^=]+?)\s*======`), "###### $1"},
	{regexp.MustCompile(`(?m)^=====\s*([^=]+?)\s*=====`), "##### $1"},
	{regexp.MustCompile(`(?m)^====\s*([^=]+?)\s*====`), "#### $1"},
	{regexp.MustCompile(`(?m)^===\s*([^=]+?)\s*===`), "### $1"},
	{regexp.MustCompile(`(?m)^==\s*([^=]+?)\s*==`), "## $1"},
	{regexp.MustCompile(`(?m)^=\s*([^=]+?)\s*=`), "# $1"},

	{regexp.MustCompile(`\[\[Category:[^\]]+\]\]`), ""},
	{regexp.MustCompile(`\[\[File:[^\]]+\]\]`), ""},
	{regexp.MustCompile(`\[\[Image:[^\]]+\]\]`), ""},
	{regexp.MustCompile(`\[\[([^\]|]+)\|([^\]]+)\]\]`), "$2"},
	{regexp.MustCompile(`\[\[([^\]]+)\]\]`), "$1"},
	{regexp.MustCompile(`\[https?://[^\s\]]+\s+([^\]]+)\]`), "$1"},

	{regexp.MustCompile(`'''([^']+)'''`), "**$1**"},
	{regexp.MustCompile(`''([^']+)''`), "*$1*"},

	{regexp.MustCompile(`\{\{[^}]+\}\}`), ""},

	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// cleanWikitext converts MediaWiki markup to readable text with code
// blocks preserved as fenced blocks.
func cleanWikitext(text string) string {
	for _, rule := range wikitextRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}
	return html.UnescapeString(strings.TrimSpace(text))
}

// categoryKeywords maps article categories to title keywords, checked
// in order.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"package_management", []string{"pacman", "aur", "package", "flatpak", "snap"}},
	{"system", []string{"systemd", "kernel", "mkinitcpio", "boot", "grub", "fstab"}},
	{"filesystem", []string{"btrfs", "ext4", "filesystem", "partition", "disk", "snapper"}},
	{"networking", []string{"network", "ssh", "firewall", "wifi", "wireless"}},
	{"desktop", []string{"kde", "gnome", "xfce", "desktop", "sway", "hyprland", "i3", "wayland", "xorg"}},
	{"installation", []string{"install", "setup", "guide", "archiso"}},
	{"security", []string{"security", "encrypt", "permission", "user", "sudo"}},
}

// categorize derives an article category from its title.
func categorize(title string) string {
	lower := strings.ToLower(title)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.category
			}
		}
	}
	return "general"
}

// excludedNamespaces are MediaWiki page prefixes that are not articles.
var excludedNamespaces = []string{"User:", "Talk:", "Template:", "Category:", "File:"}

func skipTitle(title string) bool {
	for _, ns := range excludedNamespaces {
		if strings.HasPrefix(title, ns) {
			return true
		}
	}
	return false
}

// articleURL builds the canonical wiki URL for a title.
func articleURL(title string) string {
	return "https://wiki.archlinux.org/title/" + strings.ReplaceAll(title, " ", "_")
}
