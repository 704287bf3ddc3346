// Package system executes package, snapshot, and info operations on
// the host. Mutating operations create a pre-operation snapshot when
// snapper is available, so every change has a restore point.
package system

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/rithythul/koompi-os/internal/intent"
)

// Runner executes external commands. dir may be empty for the current
// directory.
type Runner interface {
	Run(dir, name string, args ...string) error
	Has(name string) bool
}

type execRunner struct{}

func (execRunner) Run(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (execRunner) Has(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Executor runs system operations for classified intents.
type Executor struct {
	runner Runner
	out    io.Writer
}

// NewExecutor creates an executor that shells out to the host.
func NewExecutor() *Executor {
	return &Executor{runner: execRunner{}, out: os.Stdout}
}

// NewExecutorWith creates an executor with a custom runner and output,
// for testing.
func NewExecutorWith(r Runner, out io.Writer) *Executor {
	return &Executor{runner: r, out: out}
}

// desktopPackages maps a desktop environment to the packages that make
// it usable out of the box, not just the bare session.
var desktopPackages = map[string][]string{
	"kde": {"plasma-desktop", "plasma-workspace", "plasma-pa", "plasma-nm",
		"sddm", "konsole", "dolphin", "kate"},
	"gnome":    {"gnome", "gnome-tweaks", "gdm"},
	"xfce":     {"xfce4", "xfce4-goodies", "lightdm", "lightdm-gtk-greeter"},
	"cinnamon": {"cinnamon", "nemo", "lightdm", "lightdm-gtk-greeter"},
	"mate":     {"mate", "mate-extra", "lightdm", "lightdm-gtk-greeter"},
	"i3":       {"i3-wm", "i3status", "i3lock", "dmenu", "alacritty", "lightdm"},
	"sway":     {"sway", "swaylock", "waybar", "wofi", "foot", "greetd"},
	"hyprland": {"hyprland", "waybar", "wofi", "foot", "greetd"},
}

// displayManagers maps a desktop environment to the service enabled
// after install.
var displayManagers = map[string]string{
	"kde": "sddm", "gnome": "gdm", "xfce": "lightdm",
	"cinnamon": "lightdm", "mate": "lightdm", "i3": "lightdm",
	"sway": "greetd", "hyprland": "greetd",
}

// DesktopNames returns the installable desktop environments.
func DesktopNames() []string {
	names := make([]string, 0, len(desktopPackages))
	for name := range desktopPackages {
		names = append(names, name)
	}
	return names
}

// Install installs a package, trying the official repos first and the
// AUR as fallback.
func (e *Executor) Install(pkg string) error {
	e.preSnapshot("Install " + pkg)

	if err := e.runner.Run("", "sudo", "pacman", "-S", "--needed", "--noconfirm", pkg); err == nil {
		return nil
	}
	if !e.runner.Has("yay") {
		return fmt.Errorf("package %s not found in official repos and yay is not installed (run 'koompi setup-yay')", pkg)
	}
	fmt.Fprintln(e.out, "Not in official repos, trying AUR...")
	if err := e.runner.Run("", "yay", "-S", "--needed", pkg); err != nil {
		return fmt.Errorf("installing %s: %w", pkg, err)
	}
	return nil
}

// Remove removes a package together with its unused dependencies.
func (e *Executor) Remove(pkg string) error {
	e.preSnapshot("Remove " + pkg)
	if err := e.runner.Run("", "sudo", "pacman", "-Rns", pkg); err != nil {
		return fmt.Errorf("removing %s: %w", pkg, err)
	}
	return nil
}

// Update upgrades the whole system, through yay when available so AUR
// packages are covered too.
func (e *Executor) Update() error {
	e.preSnapshot("System update")
	if e.runner.Has("yay") {
		return e.runner.Run("", "yay", "-Syu")
	}
	return e.runner.Run("", "sudo", "pacman", "-Syu")
}

// SearchPackages searches the official repos and, when available, the AUR.
func (e *Executor) SearchPackages(query string) error {
	fmt.Fprintln(e.out, "=== Official Repositories ===")
	if err := e.runner.Run("", "pacman", "-Ss", query); err != nil {
		log.Printf("pacman search failed: %v", err)
	}
	if e.runner.Has("yay") {
		fmt.Fprintln(e.out, "\n=== AUR ===")
		return e.runner.Run("", "yay", "-Ss", query)
	}
	return nil
}

// InstallDesktop installs a desktop environment and enables its
// display manager.
func (e *Executor) InstallDesktop(de string) error {
	de = strings.ToLower(de)
	packages, ok := desktopPackages[de]
	if !ok {
		return fmt.Errorf("unknown desktop %q (available: %s)", de, strings.Join(DesktopNames(), ", "))
	}

	e.preSnapshot("Install " + de + " desktop")
	fmt.Fprintf(e.out, "Installing: %s\n", strings.Join(packages, " "))

	args := append([]string{"pacman", "-S", "--needed"}, packages...)
	if err := e.runner.Run("", "sudo", args...); err != nil {
		return fmt.Errorf("installing %s desktop: %w", de, err)
	}

	if dm := displayManagers[de]; dm != "" {
		if err := e.runner.Run("", "sudo", "systemctl", "enable", dm); err != nil {
			return fmt.Errorf("enabling %s: %w", dm, err)
		}
	}
	fmt.Fprintf(e.out, "%s installed. Reboot to start.\n", strings.ToUpper(de))
	return nil
}

// CreateSnapshot creates a system snapshot via snapper.
func (e *Executor) CreateSnapshot(description string) error {
	if err := e.runner.Run("", "sudo", "snapper", "create", "--description", description); err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	fmt.Fprintf(e.out, "Created snapshot: %s\n", description)
	return nil
}

// ListSnapshots lists system snapshots.
func (e *Executor) ListSnapshots() error {
	return e.runner.Run("", "sudo", "snapper", "list")
}

// Rollback rolls the system back to a snapshot. A reboot completes it.
func (e *Executor) Rollback(snapshotID string) error {
	if err := e.runner.Run("", "sudo", "snapper", "rollback", snapshotID); err != nil {
		return fmt.Errorf("rolling back to %s: %w", snapshotID, err)
	}
	fmt.Fprintln(e.out, "Rollback configured. Please reboot to complete.")
	return nil
}

// DeleteSnapshot deletes a snapshot.
func (e *Executor) DeleteSnapshot(snapshotID string) error {
	if err := e.runner.Run("", "sudo", "snapper", "delete", snapshotID); err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", snapshotID, err)
	}
	return nil
}

// DiskSpace prints human-readable disk usage.
func (e *Executor) DiskSpace() error {
	return e.runner.Run("", "df", "-h")
}

// MemoryInfo prints human-readable memory usage.
func (e *Executor) MemoryInfo() error {
	return e.runner.Run("", "free", "-h")
}

// SystemInfo prints basic host information.
func (e *Executor) SystemInfo() error {
	hostname, _ := os.Hostname()
	fmt.Fprintln(e.out, "KOOMPI OS System Information")
	fmt.Fprintf(e.out, "  OS:           KOOMPI OS\n")
	if release, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		fmt.Fprintf(e.out, "  Kernel:       %s\n", strings.TrimSpace(string(release)))
	}
	fmt.Fprintf(e.out, "  Architecture: %s\n", runtime.GOARCH)
	fmt.Fprintf(e.out, "  Hostname:     %s\n", hostname)
	fmt.Fprintf(e.out, "  CPU Cores:    %d\n", runtime.NumCPU())
	if mem := totalMemoryGB(); mem > 0 {
		fmt.Fprintf(e.out, "  Memory:       %.1f GB\n", mem)
	}
	return nil
}

// SetupYay installs the yay AUR helper from source.
func (e *Executor) SetupYay() error {
	if e.runner.Has("yay") {
		fmt.Fprintln(e.out, "yay is already installed")
		return nil
	}

	fmt.Fprintln(e.out, "Installing yay (AUR helper)...")
	tmpdir, err := os.MkdirTemp("", "yay-build-")
	if err != nil {
		return fmt.Errorf("creating build dir: %w", err)
	}
	defer os.RemoveAll(tmpdir)

	if err := e.runner.Run(tmpdir, "git", "clone", "https://aur.archlinux.org/yay.git"); err != nil {
		return fmt.Errorf("cloning yay: %w", err)
	}
	if err := e.runner.Run(tmpdir+"/yay", "makepkg", "-si", "--noconfirm"); err != nil {
		return fmt.Errorf("building yay: %w", err)
	}
	fmt.Fprintln(e.out, "yay installed successfully")
	return nil
}

// preSnapshot creates a best-effort snapshot before a mutating
// operation. Failure is not fatal.
func (e *Executor) preSnapshot(reason string) {
	if !e.runner.Has("snapper") {
		return
	}
	if err := e.runner.Run("", "sudo", "snapper", "create", "--description", "pre-"+reason); err != nil {
		log.Printf("Pre-operation snapshot failed: %v", err)
	}
}

func totalMemoryGB() float64 {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "MemTotal") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return kb / 1024 / 1024
	}
	return 0
}

// Dispatch routes a classified intent to its system operation. It
// returns false when the intent is not a system action and should go
// to the assistant instead.
func (e *Executor) Dispatch(c intent.Classification) (bool, error) {
	switch c.Intent {
	case intent.InstallPackage:
		pkg := c.Entities["package_name"]
		if pkg == "" {
			return false, nil
		}
		fmt.Fprintf(e.out, "Installing: %s\n", pkg)
		return true, e.Install(pkg)

	case intent.RemovePackage:
		pkg := c.Entities["package_name"]
		if pkg == "" {
			return false, nil
		}
		fmt.Fprintf(e.out, "Removing: %s\n", pkg)
		return true, e.Remove(pkg)

	case intent.UpdateSystem:
		fmt.Fprintln(e.out, "Updating system")
		return true, e.Update()

	case intent.SearchPackage:
		query := c.Entities["package_name"]
		if query == "" {
			return false, nil
		}
		return true, e.SearchPackages(query)

	case intent.InstallDesktop:
		de := c.Entities["desktop"]
		if de == "" {
			return false, nil
		}
		return true, e.InstallDesktop(de)

	case intent.CreateSnapshot:
		return true, e.CreateSnapshot("manual")

	case intent.ListSnapshots:
		return true, e.ListSnapshots()

	case intent.Rollback:
		sid := c.Entities["snapshot_id"]
		if sid == "" {
			fmt.Fprintln(e.out, "Please specify a snapshot ID: koompi rollback <id>")
			return true, nil
		}
		return true, e.Rollback(sid)

	case intent.SystemInfo:
		return true, e.SystemInfo()

	case intent.DiskSpace:
		return true, e.DiskSpace()

	case intent.MemoryInfo:
		return true, e.MemoryInfo()

	default:
		// Greetings, help, classroom actions, and unknown input all go
		// to the assistant.
		return false, nil
	}
}
