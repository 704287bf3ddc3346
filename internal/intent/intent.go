// Package intent classifies natural-language requests into actionable
// system intents using an ordered table of regular expressions.
package intent

import (
	"regexp"
	"strings"
)

// Intent identifies a recognized user request category.
type Intent string

const (
	// Package management
	InstallPackage Intent = "install_package"
	RemovePackage  Intent = "remove_package"
	UpdateSystem   Intent = "update_system"
	SearchPackage  Intent = "search_package"

	// Desktop environment
	InstallDesktop Intent = "install_desktop"

	// Snapshot management
	CreateSnapshot Intent = "create_snapshot"
	ListSnapshots  Intent = "list_snapshots"
	Rollback       Intent = "rollback"

	// System info
	SystemInfo Intent = "system_info"
	DiskSpace  Intent = "disk_space"
	MemoryInfo Intent = "memory_info"

	// Classroom
	ShareFiles  Intent = "share_files"
	ListDevices Intent = "list_devices"

	// General
	Greeting Intent = "greeting"
	Help     Intent = "help"
	Unknown  Intent = "unknown"
)

// Classification is the result of classifying one input.
type Classification struct {
	Intent     Intent
	Confidence float64
	Entities   map[string]string
	RawText    string
}

const (
	matchConfidence   = 0.9
	unknownConfidence = 0.5
)

// ruleDefs is checked top to bottom; the first matching pattern wins,
// so more specific intents must come before broader ones. Removal sits
// before install because "uninstall" and "get rid of" would otherwise
// hit the broad install patterns. Khmer variants sit alongside their
// English equivalents.
var ruleDefs = []struct {
	intent   Intent
	patterns []string
}{
	{RemovePackage, []string{
		`(?:help\s+me\s+)?remove\s+(.+)`,
		`(?:can\s+you\s+)?(?:please\s+)?(?:remove|uninstall|delete)\s+(.+)`,
		`(?:i\s+want\s+to\s+)?(?:remove|uninstall|delete)\s+(.+)`,
		`get\s+rid\s+of\s+(.+)`,
		`លុប\s+(.+)`,
	}},
	{InstallPackage, []string{
		`(?:help\s+me\s+)?install\s+(.+)`,
		`(?:can\s+you\s+)?(?:please\s+)?install\s+(.+)`,
		`(?:i\s+want\s+to\s+)?install\s+(.+)`,
		`(?:i\s+need\s+)?(.+)\s+installed`,
		`add\s+(.+)`,
		`get\s+(?:me\s+)?(.+)`,
		`setup\s+(.+)`,
		`ដំឡើង\s+(.+)`,
		`ជួយ\s*ដំឡើង\s+(.+)`,
	}},
	{UpdateSystem, []string{
		`(?:help\s+me\s+)?update(?:\s+(?:my\s+)?system)?`,
		`(?:can\s+you\s+)?(?:please\s+)?update(?:\s+everything)?`,
		`upgrade(?:\s+(?:my\s+)?system)?`,
		`(?:keep|make)\s+(?:my\s+)?system\s+up\s+to\s+date`,
		`ធ្វើបច្ចុប្បន្នភាព`,
	}},
	{SearchPackage, []string{
		`(?:help\s+me\s+)?search(?:\s+for)?\s+(.+)`,
		`find\s+(?:a\s+)?package\s+(?:called\s+)?(.+)`,
		`(?:is\s+there\s+a\s+)?package\s+(?:for\s+)?(.+)`,
		`look\s+(?:up|for)\s+(.+)`,
		`what\s+package\s+(?:provides|has)\s+(.+)`,
	}},
	{InstallDesktop, []string{
		`(?:help\s+me\s+)?install\s+(kde|plasma|gnome|xfce|cinnamon|mate|i3|sway|hyprland)`,
		`(?:i\s+want\s+)?(?:to\s+use\s+)?(kde|plasma|gnome|xfce|cinnamon|mate|i3|sway|hyprland)`,
		`setup\s+(kde|plasma|gnome|xfce|cinnamon|mate|i3|sway|hyprland)`,
		`switch\s+to\s+(kde|plasma|gnome|xfce|cinnamon|mate|i3|sway|hyprland)`,
		`(?:give\s+me\s+)?(?:a\s+)?(kde|plasma|gnome|xfce|cinnamon|mate|i3|sway|hyprland)\s+desktop`,
	}},
	{CreateSnapshot, []string{
		`(?:help\s+me\s+)?create\s+(?:a\s+)?snapshot`,
		`(?:can\s+you\s+)?make\s+(?:a\s+)?snapshot`,
		`(?:please\s+)?backup\s+(?:my\s+)?system`,
		`save\s+(?:the\s+)?(?:current\s+)?system\s+state`,
		`take\s+(?:a\s+)?snapshot`,
	}},
	{ListSnapshots, []string{
		`(?:help\s+me\s+)?list\s+(?:all\s+)?snapshots`,
		`show\s+(?:me\s+)?(?:all\s+)?snapshots`,
		`what\s+snapshots\s+(?:do\s+i\s+have|exist)`,
		`^snapshots$`,
	}},
	{Rollback, []string{
		`(?:help\s+me\s+)?rollback(?:\s+to\s+(.+))?`,
		`(?:can\s+you\s+)?restore(?:\s+to\s+(.+))?`,
		`(?:please\s+)?revert(?:\s+to\s+(.+))?`,
		`go\s+back\s+to\s+(?:snapshot\s+)?(.+)`,
		`undo\s+(?:recent\s+)?changes`,
	}},
	{SystemInfo, []string{
		`system\s+info`,
		`about\s+(?:this\s+)?computer`,
		`specs`,
	}},
	{DiskSpace, []string{
		`disk\s+space`,
		`storage`,
		`how\s+much\s+space`,
	}},
	{MemoryInfo, []string{
		`memory`,
		`ram`,
		`how\s+much\s+ram`,
	}},
	{ShareFiles, []string{
		`share\s+(.+)`,
		`send\s+(.+)\s+to\s+(.+)`,
	}},
	{ListDevices, []string{
		`who\s+is\s+online`,
		`list\s+devices`,
		`show\s+students`,
	}},
	{Greeting, []string{
		`^(?:hi|hello|hey|សួស្តី)$`,
		`good\s+(?:morning|afternoon|evening)`,
	}},
	{Help, []string{
		`^help$`,
		`what\s+can\s+you\s+do`,
		`how\s+do\s+i\s+use\s+(?:this|koompi)`,
		`ជួយ`,
	}},
}

var (
	fillerPrefixRe = regexp.MustCompile(`(?i)^(?:the|a|an|package|app|application|program)\s+`)
	fillerSuffixRe = regexp.MustCompile(`(?i)\s+(?:package|app|application|program)$`)
)

type rule struct {
	intent   Intent
	patterns []*regexp.Regexp
}

// Classifier matches input text against the rule table.
type Classifier struct {
	rules []rule
}

// NewClassifier compiles the rule table.
func NewClassifier() *Classifier {
	rules := make([]rule, 0, len(ruleDefs))
	for _, def := range ruleDefs {
		r := rule{intent: def.intent}
		for _, p := range def.patterns {
			r.patterns = append(r.patterns, regexp.MustCompile(`(?i)`+p))
		}
		rules = append(rules, r)
	}
	return &Classifier{rules: rules}
}

// Classify returns the first matching intent for text, or Unknown with
// reduced confidence when no rule matches.
func (c *Classifier) Classify(text string) Classification {
	text = strings.TrimSpace(text)

	for _, r := range c.rules {
		for _, p := range r.patterns {
			if m := p.FindStringSubmatch(text); m != nil {
				return Classification{
					Intent:     r.intent,
					Confidence: matchConfidence,
					Entities:   extractEntities(r.intent, m),
					RawText:    text,
				}
			}
		}
	}

	return Classification{
		Intent:     Unknown,
		Confidence: unknownConfidence,
		Entities:   map[string]string{},
		RawText:    text,
	}
}

// extractEntities pulls structured values out of a pattern match.
// m[0] is the full match; captured groups start at m[1].
func extractEntities(in Intent, m []string) map[string]string {
	entities := map[string]string{}

	switch in {
	case InstallPackage, RemovePackage, SearchPackage:
		if len(m) > 1 {
			entities["package_name"] = cleanPackageName(m[1])
		}
	case Rollback:
		if len(m) > 1 && m[1] != "" {
			entities["snapshot_id"] = strings.TrimSpace(m[1])
		}
	case ShareFiles:
		if len(m) > 1 {
			entities["files"] = strings.TrimSpace(m[1])
		}
	case InstallDesktop:
		if len(m) > 1 {
			de := strings.ToLower(strings.TrimSpace(m[1]))
			if de == "plasma" {
				de = "kde"
			}
			entities["desktop"] = de
		}
	}

	return entities
}

// cleanPackageName strips common filler words around a package name,
// so "the firefox browser app" becomes "firefox browser".
func cleanPackageName(raw string) string {
	pkg := strings.TrimSpace(raw)
	pkg = fillerPrefixRe.ReplaceAllString(pkg, "")
	pkg = fillerSuffixRe.ReplaceAllString(pkg, "")
	return strings.TrimSpace(pkg)
}
