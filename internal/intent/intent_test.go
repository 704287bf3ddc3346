package intent

import "testing"

func TestClassifyPackageManagement(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		text    string
		intent  Intent
		pkgName string
	}{
		{"install firefox", InstallPackage, "firefox"},
		{"help me install vlc", InstallPackage, "vlc"},
		{"can you please install gimp", InstallPackage, "gimp"},
		{"add libreoffice", InstallPackage, "libreoffice"},
		{"get me krita", InstallPackage, "krita"},
		{"remove firefox", RemovePackage, "firefox"},
		{"uninstall the vlc app", RemovePackage, "vlc"},
		{"get rid of gimp", RemovePackage, "gimp"},
		{"search for a markdown editor", SearchPackage, "a markdown editor"},
		{"look up inkscape", SearchPackage, "inkscape"},
	}

	for _, tt := range tests {
		got := c.Classify(tt.text)
		if got.Intent != tt.intent {
			t.Errorf("Classify(%q) intent = %s, want %s", tt.text, got.Intent, tt.intent)
			continue
		}
		if got.Confidence != 0.9 {
			t.Errorf("Classify(%q) confidence = %v, want 0.9", tt.text, got.Confidence)
		}
		if got.Entities["package_name"] != tt.pkgName {
			t.Errorf("Classify(%q) package_name = %q, want %q", tt.text, got.Entities["package_name"], tt.pkgName)
		}
	}
}

func TestClassifyPackageNameCleaning(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("install the firefox browser program")
	if got.Intent != InstallPackage {
		t.Fatalf("expected install_package, got %s", got.Intent)
	}
	if got.Entities["package_name"] != "firefox browser" {
		t.Errorf("package_name = %q, want %q", got.Entities["package_name"], "firefox browser")
	}
}

func TestClassifyUpdateSystem(t *testing.T) {
	c := NewClassifier()

	for _, text := range []string{"update", "update my system", "upgrade", "keep my system up to date"} {
		got := c.Classify(text)
		if got.Intent != UpdateSystem {
			t.Errorf("Classify(%q) = %s, want update_system", text, got.Intent)
		}
	}
}

func TestClassifyDesktop(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		text    string
		intent  Intent
		desktop string
	}{
		{"switch to plasma", InstallDesktop, "kde"},
		{"switch to gnome", InstallDesktop, "gnome"},
		{"i want to use xfce", InstallDesktop, "xfce"},
		{"give me a kde desktop", InstallDesktop, "kde"},
	}

	for _, tt := range tests {
		got := c.Classify(tt.text)
		if got.Intent != tt.intent {
			t.Errorf("Classify(%q) intent = %s, want %s", tt.text, got.Intent, tt.intent)
			continue
		}
		if got.Entities["desktop"] != tt.desktop {
			t.Errorf("Classify(%q) desktop = %q, want %q", tt.text, got.Entities["desktop"], tt.desktop)
		}
	}
}

func TestClassifyInstallDesktopNameGoesToPackageRule(t *testing.T) {
	// Package rules come first, so "install kde" carries the name as a
	// package entity. The executor resolves desktop names downstream.
	c := NewClassifier()

	got := c.Classify("install kde")
	if got.Intent != InstallPackage {
		t.Fatalf("expected install_package, got %s", got.Intent)
	}
	if got.Entities["package_name"] != "kde" {
		t.Errorf("package_name = %q, want %q", got.Entities["package_name"], "kde")
	}
}

func TestClassifySnapshots(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		text   string
		intent Intent
	}{
		{"create a snapshot", CreateSnapshot},
		{"backup my system", CreateSnapshot},
		{"take a snapshot", CreateSnapshot},
		{"list snapshots", ListSnapshots},
		{"show me all snapshots", ListSnapshots},
		{"snapshots", ListSnapshots},
		{"undo recent changes", Rollback},
	}

	for _, tt := range tests {
		got := c.Classify(tt.text)
		if got.Intent != tt.intent {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, got.Intent, tt.intent)
		}
	}
}

func TestClassifyRollbackSnapshotID(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("rollback to 42")
	if got.Intent != Rollback {
		t.Fatalf("expected rollback, got %s", got.Intent)
	}
	if got.Entities["snapshot_id"] != "42" {
		t.Errorf("snapshot_id = %q, want %q", got.Entities["snapshot_id"], "42")
	}

	got = c.Classify("rollback")
	if got.Intent != Rollback {
		t.Fatalf("expected rollback, got %s", got.Intent)
	}
	if _, ok := got.Entities["snapshot_id"]; ok {
		t.Errorf("bare rollback should carry no snapshot_id, got %q", got.Entities["snapshot_id"])
	}
}

func TestClassifySystemQueries(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		text   string
		intent Intent
	}{
		{"system info", SystemInfo},
		{"about this computer", SystemInfo},
		{"disk space", DiskSpace},
		{"how much space do i have", DiskSpace},
		{"how much ram", MemoryInfo},
		{"who is online", ListDevices},
		{"list devices", ListDevices},
	}

	for _, tt := range tests {
		got := c.Classify(tt.text)
		if got.Intent != tt.intent {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, got.Intent, tt.intent)
		}
	}
}

func TestClassifyShareFiles(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("share homework.pdf")
	if got.Intent != ShareFiles {
		t.Fatalf("expected share_files, got %s", got.Intent)
	}
	if got.Entities["files"] != "homework.pdf" {
		t.Errorf("files = %q, want %q", got.Entities["files"], "homework.pdf")
	}
}

func TestClassifyGreetingAndHelp(t *testing.T) {
	c := NewClassifier()

	for _, text := range []string{"hi", "Hello", "hey", "good morning"} {
		if got := c.Classify(text); got.Intent != Greeting {
			t.Errorf("Classify(%q) = %s, want greeting", text, got.Intent)
		}
	}

	for _, text := range []string{"help", "what can you do", "how do i use koompi"} {
		if got := c.Classify(text); got.Intent != Help {
			t.Errorf("Classify(%q) = %s, want help", text, got.Intent)
		}
	}
}

func TestClassifyKhmer(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("ដំឡើង firefox")
	if got.Intent != InstallPackage {
		t.Fatalf("expected install_package, got %s", got.Intent)
	}
	if got.Entities["package_name"] != "firefox" {
		t.Errorf("package_name = %q, want %q", got.Entities["package_name"], "firefox")
	}

	if got := c.Classify("សួស្តី"); got.Intent != Greeting {
		t.Errorf("expected greeting, got %s", got.Intent)
	}
	if got := c.Classify("ជួយ"); got.Intent != Help {
		t.Errorf("expected help, got %s", got.Intent)
	}
}

func TestClassifyUnknown(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("the quick brown fox")
	if got.Intent != Unknown {
		t.Fatalf("expected unknown, got %s", got.Intent)
	}
	if got.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", got.Confidence)
	}
	if len(got.Entities) != 0 {
		t.Errorf("expected no entities, got %v", got.Entities)
	}
	if got.RawText != "the quick brown fox" {
		t.Errorf("raw text = %q", got.RawText)
	}
}

func TestClassifyTrimsWhitespace(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("  install firefox  ")
	if got.Intent != InstallPackage {
		t.Fatalf("expected install_package, got %s", got.Intent)
	}
	if got.RawText != "install firefox" {
		t.Errorf("raw text = %q, want trimmed input", got.RawText)
	}
}
