package system

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rithythul/koompi-os/internal/intent"
)

// fakeRunner records every command and lets tests fail selected ones
// or hide binaries.
type fakeRunner struct {
	commands []string
	failOn   map[string]error
	missing  map[string]bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{failOn: map[string]error{}, missing: map[string]bool{}}
}

func (r *fakeRunner) Run(dir, name string, args ...string) error {
	cmd := strings.Join(append([]string{name}, args...), " ")
	r.commands = append(r.commands, cmd)
	for prefix, err := range r.failOn {
		if strings.HasPrefix(cmd, prefix) {
			return err
		}
	}
	return nil
}

func (r *fakeRunner) Has(name string) bool {
	return !r.missing[name]
}

func (r *fakeRunner) ran(prefix string) bool {
	for _, cmd := range r.commands {
		if strings.HasPrefix(cmd, prefix) {
			return true
		}
	}
	return false
}

func newTestExecutor() (*Executor, *fakeRunner, *bytes.Buffer) {
	runner := newFakeRunner()
	var out bytes.Buffer
	return NewExecutorWith(runner, &out), runner, &out
}

func TestInstall(t *testing.T) {
	exec, runner, _ := newTestExecutor()

	if err := exec.Install("firefox"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !runner.ran("sudo snapper create --description pre-Install firefox") {
		t.Error("expected pre-operation snapshot")
	}
	if !runner.ran("sudo pacman -S --needed --noconfirm firefox") {
		t.Errorf("expected pacman install, got %v", runner.commands)
	}
	if runner.ran("yay") {
		t.Error("yay should not run when pacman succeeds")
	}
}

func TestInstallFallsBackToAUR(t *testing.T) {
	exec, runner, _ := newTestExecutor()
	runner.failOn["sudo pacman -S"] = errors.New("target not found")

	if err := exec.Install("some-aur-pkg"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !runner.ran("yay -S --needed some-aur-pkg") {
		t.Errorf("expected yay fallback, got %v", runner.commands)
	}
}

func TestInstallFailsWithoutYay(t *testing.T) {
	exec, runner, _ := newTestExecutor()
	runner.failOn["sudo pacman -S"] = errors.New("target not found")
	runner.missing["yay"] = true

	err := exec.Install("some-aur-pkg")
	if err == nil {
		t.Fatal("expected error when pacman fails and yay is missing")
	}
	if !strings.Contains(err.Error(), "setup-yay") {
		t.Errorf("error should point at setup-yay, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	exec, runner, _ := newTestExecutor()

	if err := exec.Remove("gimp"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !runner.ran("sudo pacman -Rns gimp") {
		t.Errorf("expected pacman remove, got %v", runner.commands)
	}
	if !runner.ran("sudo snapper create --description pre-Remove gimp") {
		t.Error("expected pre-operation snapshot")
	}
}

func TestUpdatePrefersYay(t *testing.T) {
	exec, runner, _ := newTestExecutor()

	if err := exec.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !runner.ran("yay -Syu") {
		t.Errorf("expected yay update, got %v", runner.commands)
	}
}

func TestUpdateWithoutYay(t *testing.T) {
	exec, runner, _ := newTestExecutor()
	runner.missing["yay"] = true

	if err := exec.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !runner.ran("sudo pacman -Syu") {
		t.Errorf("expected pacman update, got %v", runner.commands)
	}
}

func TestSearchPackages(t *testing.T) {
	exec, runner, _ := newTestExecutor()

	if err := exec.SearchPackages("editor"); err != nil {
		t.Fatalf("SearchPackages: %v", err)
	}
	if !runner.ran("pacman -Ss editor") || !runner.ran("yay -Ss editor") {
		t.Errorf("expected repo and AUR search, got %v", runner.commands)
	}
}

func TestInstallDesktop(t *testing.T) {
	exec, runner, _ := newTestExecutor()

	if err := exec.InstallDesktop("KDE"); err != nil {
		t.Fatalf("InstallDesktop: %v", err)
	}
	if !runner.ran("sudo pacman -S --needed plasma-desktop plasma-workspace") {
		t.Errorf("expected plasma packages, got %v", runner.commands)
	}
	if !runner.ran("sudo systemctl enable sddm") {
		t.Errorf("expected sddm enabled, got %v", runner.commands)
	}
}

func TestInstallDesktopUnknown(t *testing.T) {
	exec, _, _ := newTestExecutor()

	err := exec.InstallDesktop("aqua")
	if err == nil {
		t.Fatal("expected error for unknown desktop")
	}
	if !strings.Contains(err.Error(), "available") {
		t.Errorf("error should list available desktops, got %v", err)
	}
}

func TestEveryDesktopHasADisplayManager(t *testing.T) {
	for de := range desktopPackages {
		if displayManagers[de] == "" {
			t.Errorf("desktop %s has no display manager", de)
		}
	}
}

func TestSnapshots(t *testing.T) {
	exec, runner, _ := newTestExecutor()

	if err := exec.CreateSnapshot("before experiment"); err != nil {
		t.Fatalf("CreateSnapshot: %v", err)
	}
	if err := exec.ListSnapshots(); err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if err := exec.Rollback("42"); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if err := exec.DeleteSnapshot("7"); err != nil {
		t.Fatalf("DeleteSnapshot: %v", err)
	}

	for _, want := range []string{
		"sudo snapper create --description before experiment",
		"sudo snapper list",
		"sudo snapper rollback 42",
		"sudo snapper delete 7",
	} {
		if !runner.ran(want) {
			t.Errorf("missing command %q in %v", want, runner.commands)
		}
	}
}

func TestPreSnapshotSkippedWithoutSnapper(t *testing.T) {
	exec, runner, _ := newTestExecutor()
	runner.missing["snapper"] = true

	if err := exec.Remove("gimp"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if runner.ran("sudo snapper") {
		t.Error("snapshot should be skipped when snapper is missing")
	}
}

func TestPreSnapshotFailureIsNotFatal(t *testing.T) {
	exec, runner, _ := newTestExecutor()
	runner.failOn["sudo snapper create --description pre-"] = errors.New("no btrfs")

	if err := exec.Remove("gimp"); err != nil {
		t.Fatalf("Remove should survive snapshot failure: %v", err)
	}
	if !runner.ran("sudo pacman -Rns gimp") {
		t.Errorf("expected remove to proceed, got %v", runner.commands)
	}
}

func TestDispatchRouting(t *testing.T) {
	tests := []struct {
		name    string
		c       intent.Classification
		handled bool
		command string
	}{
		{"install", intent.Classification{Intent: intent.InstallPackage, Entities: map[string]string{"package_name": "vlc"}}, true, "sudo pacman -S --needed --noconfirm vlc"},
		{"remove", intent.Classification{Intent: intent.RemovePackage, Entities: map[string]string{"package_name": "vlc"}}, true, "sudo pacman -Rns vlc"},
		{"update", intent.Classification{Intent: intent.UpdateSystem, Entities: map[string]string{}}, true, "yay -Syu"},
		{"search", intent.Classification{Intent: intent.SearchPackage, Entities: map[string]string{"package_name": "editor"}}, true, "pacman -Ss editor"},
		{"desktop", intent.Classification{Intent: intent.InstallDesktop, Entities: map[string]string{"desktop": "sway"}}, true, "sudo systemctl enable greetd"},
		{"snapshot", intent.Classification{Intent: intent.CreateSnapshot, Entities: map[string]string{}}, true, "sudo snapper create --description manual"},
		{"rollback", intent.Classification{Intent: intent.Rollback, Entities: map[string]string{"snapshot_id": "3"}}, true, "sudo snapper rollback 3"},
		{"disk", intent.Classification{Intent: intent.DiskSpace, Entities: map[string]string{}}, true, "df -h"},
		{"memory", intent.Classification{Intent: intent.MemoryInfo, Entities: map[string]string{}}, true, "free -h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, runner, _ := newTestExecutor()
			handled, err := exec.Dispatch(tt.c)
			if err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
			if handled != tt.handled {
				t.Fatalf("handled = %v, want %v", handled, tt.handled)
			}
			if tt.command != "" && !runner.ran(tt.command) {
				t.Errorf("missing command %q in %v", tt.command, runner.commands)
			}
		})
	}
}

func TestDispatchRollbackWithoutID(t *testing.T) {
	exec, runner, out := newTestExecutor()

	handled, err := exec.Dispatch(intent.Classification{Intent: intent.Rollback, Entities: map[string]string{}})
	if err != nil || !handled {
		t.Fatalf("Dispatch = (%v, %v), want handled without error", handled, err)
	}
	if runner.ran("sudo snapper rollback") {
		t.Error("rollback must not run without a snapshot ID")
	}
	if !strings.Contains(out.String(), "snapshot ID") {
		t.Errorf("expected usage hint, got %q", out.String())
	}
}

func TestDispatchLeavesConversationToAssistant(t *testing.T) {
	for _, it := range []intent.Intent{intent.Greeting, intent.Help, intent.Unknown, intent.ShareFiles, intent.ListDevices} {
		exec, _, _ := newTestExecutor()
		handled, err := exec.Dispatch(intent.Classification{Intent: it, Entities: map[string]string{}})
		if err != nil {
			t.Fatalf("Dispatch(%s): %v", it, err)
		}
		if handled {
			t.Errorf("intent %s should not be handled by the executor", it)
		}
	}
}

func TestDispatchInstallWithoutPackage(t *testing.T) {
	exec, runner, _ := newTestExecutor()

	handled, _ := exec.Dispatch(intent.Classification{Intent: intent.InstallPackage, Entities: map[string]string{}})
	if handled {
		t.Error("install without a package name should fall through")
	}
	if len(runner.commands) != 0 {
		t.Errorf("no commands expected, got %v", runner.commands)
	}
}
