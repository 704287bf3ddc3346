package assistant

import "strings"

// Canned responses keep the assistant useful with no network and an
// empty knowledge base. Topics are matched by keyword presence in a
// fixed order; the first matching topic wins.

const greetingResponse = "សួស្តី! Hello! I'm KOOMPI Assistant. I can help you with Linux, Windows, macOS, and general computing. What would you like to learn?"

const helpResponse = `I can help you with:

**KOOMPI OS / Arch Linux:**
- Installing packages: ` + "`koompi install firefox`" + `
- System updates: ` + "`koompi update`" + `
- Snapshots: ` + "`koompi snapshot create/list/rollback`" + `
- Desktop setup: ` + "`koompi desktop kde`" + `

**Linux Commands:**
- File operations, permissions, users
- System administration, services
- Shell scripting, automation

**Other Operating Systems:**
- Windows commands and equivalents
- macOS terminal and Homebrew
- Cross-platform workflows

**Programming & More:**
- Python, Rust, JavaScript, etc.
- Networking, security, hardware

Just ask naturally! For example:
- "How do I install KDE?"
- "What's the Windows equivalent of grep?"
- "How do I create a Python virtual environment?"`

const offlineFallbackResponse = "I'm currently in offline mode with limited knowledge. For detailed help, please check your internet connection and API key. Basic commands still work!"

const unreachableResponse = "I couldn't reach the AI service and found nothing relevant in the local knowledge base. Please check your internet connection and API key."

var greetingPhrases = []string{"hello", "hi", "hey", "សួស្តី", "good morning", "good afternoon"}

var helpPhrases = []string{"help", "?", "what can you do"}

// cannedTopics is scanned in order; the first topic with a keyword
// present in the query wins.
var cannedTopics = []struct {
	topic    string
	keywords []string
}{
	{"install", []string{"install", "add", "get", "setup", "ដំឡើង"}},
	{"remove", []string{"remove", "uninstall", "delete", "លុប"}},
	{"update", []string{"update", "upgrade", "ធ្វើបច្ចុប្បន្នភាព"}},
	{"snapshot", []string{"snapshot", "backup"}},
	{"rollback", []string{"rollback", "restore", "revert"}},
	{"disk", []string{"disk", "space", "storage", "df"}},
	{"memory", []string{"memory", "ram", "free"}},
	{"windows", []string{"windows", "cmd", "powershell", "winget"}},
	{"macos", []string{"macos", "mac", "homebrew", "brew"}},
	{"python", []string{"python", "pip", "venv"}},
	{"git", []string{"git", "clone", "commit", "push"}},
}

var topicResponses = map[string]string{
	"install": `To install packages on KOOMPI OS:

` + "```bash" + `
# Using koompi CLI (recommended)
koompi install firefox

# Or directly with pacman (official repos)
sudo pacman -S firefox

# For AUR packages
yay -S spotify
` + "```" + `

The ` + "`koompi`" + ` command automatically creates a snapshot before installing.`,

	"remove": `To remove packages:

` + "```bash" + `
# Using koompi CLI
koompi remove firefox

# Or with pacman (removes package + unused dependencies)
sudo pacman -Rns firefox
` + "```" + `

A snapshot is created before removal for safety.`,

	"update": `To update KOOMPI OS:

` + "```bash" + `
# Using koompi CLI (creates snapshot first)
koompi update

# Or manually
sudo pacman -Syu

# If you have AUR packages
yay -Syu
` + "```" + `

If something breaks, rollback with: ` + "`koompi rollback <snapshot-id>`",

	"snapshot": `KOOMPI OS uses Btrfs snapshots for system protection:

` + "```bash" + `
# Create a snapshot
koompi snapshot create "before experiment"

# List all snapshots
koompi snapshot list

# Rollback to a snapshot (requires reboot)
koompi rollback <snapshot-id>
` + "```" + `

Snapshots are instant and space-efficient (copy-on-write).`,

	"rollback": `To rollback your system:

` + "```bash" + `
# List available snapshots
koompi snapshot list

# Rollback to a specific snapshot
koompi rollback <snapshot-id>

# Reboot to complete
sudo reboot
` + "```" + `

Your ` + "`/home`" + ` data is preserved during rollback.`,

	"disk": `Check disk space:

` + "```bash" + `
# Human-readable disk usage
df -h

# Directory sizes
du -sh /var/cache/pacman/*

# Btrfs-specific
sudo btrfs filesystem usage /
` + "```",

	"memory": `Check memory usage:

` + "```bash" + `
# Simple overview
free -h

# Detailed with processes
htop

# Or
top
` + "```",

	"windows": `**Windows equivalents for Linux users:**

| Linux | Windows | Description |
|-------|---------|-------------|
| ` + "`ls`" + ` | ` + "`dir`" + ` | List files |
| ` + "`cat`" + ` | ` + "`type`" + ` | Show file contents |
| ` + "`grep`" + ` | ` + "`findstr`" + ` | Search text |
| ` + "`rm`" + ` | ` + "`del`" + ` | Delete file |
| ` + "`cp`" + ` | ` + "`copy`" + ` | Copy file |
| ` + "`mv`" + ` | ` + "`move`" + ` | Move file |
| ` + "`sudo`" + ` | Run as Admin | Elevated privileges |
| ` + "`pacman`" + ` | ` + "`winget`" + ` | Package manager |
| ` + "`systemctl`" + ` | ` + "`sc`" + ` or Services | Service management |

PowerShell is more similar to Linux shells than CMD.`,

	"macos": `**macOS for Linux users:**

macOS uses zsh by default and has many Unix commands:

` + "```bash" + `
# Package manager (install Homebrew first)
brew install firefox

# Most Linux commands work
ls, cat, grep, find, etc.

# Key differences
- No pacman, use Homebrew
- No systemd, use launchctl
- File system is APFS (not ext4)
` + "```" + `

Many Linux users feel at home on the macOS terminal!`,

	"python": `**Python on KOOMPI OS:**

` + "```bash" + `
# Install Python (usually pre-installed)
koompi install python python-pip

# Create virtual environment
python -m venv myproject
source myproject/bin/activate

# Install packages
pip install requests numpy

# Run script
python script.py
` + "```",

	"git": `**Git basics:**

` + "```bash" + `
# Clone a repository
git clone https://github.com/user/repo.git

# Basic workflow
git add .
git commit -m "message"
git push

# Check status
git status
git log --oneline
` + "```",
}

// cannedResponse looks the query up against the static response table.
// Greetings and help requests are checked before the topic keywords.
func cannedResponse(query string) (string, bool) {
	lower := strings.ToLower(query)

	for _, g := range greetingPhrases {
		if strings.Contains(lower, g) {
			return greetingResponse, true
		}
	}

	trimmed := strings.TrimSpace(lower)
	for _, h := range helpPhrases {
		if trimmed == h {
			return helpResponse, true
		}
	}

	for _, t := range cannedTopics {
		for _, kw := range t.keywords {
			if strings.Contains(lower, kw) {
				return topicResponses[t.topic], true
			}
		}
	}

	return "", false
}
