package knowledge

import "log"

// seedArticle is a built-in article shipped with the binary so the
// assistant can answer common questions without network access.
type seedArticle struct {
	Title    string
	Category string
	URL      string
	Content  string
}

// Seed loads the built-in article set into the store. Existing articles
// with the same (title, source) are updated in place, so seeding is
// safe to repeat.
func (s *Store) Seed() error {
	log.Println("Seeding knowledge store with built-in articles...")

	for _, a := range wikiSeedArticles {
		if _, err := s.AddArticle(a.Title, a.Content, a.Category, "archwiki", a.URL); err != nil {
			return err
		}
	}
	for _, a := range koompiSeedArticles {
		if _, err := s.AddArticle(a.Title, a.Content, a.Category, "koompi", a.URL); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d articles", len(wikiSeedArticles)+len(koompiSeedArticles))
	return nil
}

var wikiSeedArticles = []seedArticle{
	{
		Title:    "Pacman",
		Category: "package_management",
		URL:      "https://wiki.archlinux.org/title/Pacman",
		Content: `Pacman is the package manager for Arch Linux. It combines a simple binary package format with an easy-to-use build system.

## Common Operations

Installing packages:
    pacman -S package_name
    pacman -S --needed package_name

Removing packages:
    pacman -R package_name        # remove package only
    pacman -Rs package_name       # remove unused dependencies too
    pacman -Rns package_name      # also remove config files

Upgrading packages:
    pacman -Syu                   # sync and upgrade everything
    pacman -Syyu                  # force refresh after changing mirrors

Querying packages:
    pacman -Ss keyword            # search the repositories
    pacman -Si package_name       # show package info
    pacman -Q                     # list installed packages
    pacman -Qo /path/to/file      # which package owns a file

Cleaning the cache:
    pacman -Sc                    # remove old package versions
    paccache -r                   # recommended cleanup

## Configuration
The main configuration file is /etc/pacman.conf. Useful options include
Color, ParallelDownloads, and ILoveCandy. Mirrors live in
/etc/pacman.d/mirrorlist; use reflector to pick the fastest ones.`,
	},
	{
		Title:    "AUR (Arch User Repository)",
		Category: "package_management",
		URL:      "https://wiki.archlinux.org/title/AUR",
		Content: `The Arch User Repository (AUR) is a community-driven repository for Arch Linux users. It contains package descriptions (PKGBUILDs) that allow you to compile packages from source.

## Using AUR Helpers
yay is the recommended helper on KOOMPI OS:
    git clone https://aur.archlinux.org/yay-bin.git
    cd yay-bin && makepkg -si
    yay -S package_name
    yay -Syu                      # update everything including AUR

## Manual Installation
    git clone https://aur.archlinux.org/package_name.git
    cd package_name
    less PKGBUILD                 # always review first
    makepkg -si

## Safety
AUR packages are user-submitted and not officially supported. Review the
PKGBUILD before installing and check the comments on the AUR page.`,
	},
	{
		Title:    "Systemd",
		Category: "system",
		URL:      "https://wiki.archlinux.org/title/Systemd",
		Content: `systemd is the init system and service manager for Arch Linux.

## Service Management
    sudo systemctl start service_name
    sudo systemctl stop service_name
    sudo systemctl restart service_name
    sudo systemctl enable --now service_name
    systemctl status service_name
    systemctl list-units --type=service

## Journalctl (Logs)
    journalctl -f                 # follow logs in real time
    journalctl -u service_name    # logs for one service
    journalctl -b                 # logs since boot
    journalctl -p err             # errors only
    journalctl --since "1 hour ago"

## Targets
    systemctl get-default
    sudo systemctl set-default graphical.target

## Timers
    systemctl list-timers
    sudo systemctl enable --now timer_name.timer`,
	},
	{
		Title:    "Btrfs",
		Category: "filesystem",
		URL:      "https://wiki.archlinux.org/title/Btrfs",
		Content: `Btrfs (B-tree file system) is a modern copy-on-write (CoW) filesystem for Linux. KOOMPI OS uses Btrfs for its snapshot and rollback capabilities.

## Key Features
Snapshots (instant, space-efficient), subvolumes, compression (zstd, lzo,
zlib), built-in RAID, online defragmentation.

## Subvolumes
    sudo btrfs subvolume create /mnt/@new_subvol
    sudo btrfs subvolume list /
    sudo btrfs subvolume delete /mnt/@old_subvol

KOOMPI OS layout: @ (root), @home (user data), @snapshots, @var_log.

## Snapshots
    sudo btrfs subvolume snapshot -r /source /dest/snapshot_name
    sudo snapper create -d "description"
    sudo snapper list
    sudo snapper rollback

## Maintenance
    sudo btrfs scrub start /
    sudo btrfs balance start /
    sudo btrfs filesystem usage /
    mount -o compress=zstd /dev/sda2 /mnt`,
	},
	{
		Title:    "Network Configuration",
		Category: "networking",
		URL:      "https://wiki.archlinux.org/title/Network_configuration",
		Content: `Network configuration in Arch Linux and KOOMPI OS.

## NetworkManager (default on KOOMPI OS)
    nmcli connection show
    nmcli device wifi list
    nmcli device wifi connect "SSID" password "password"
    nmcli device status
    nmtui                         # text UI

## Static IP
    nmcli connection modify "Wired" ipv4.addresses "192.168.1.100/24"
    nmcli connection modify "Wired" ipv4.gateway "192.168.1.1"
    nmcli connection modify "Wired" ipv4.dns "8.8.8.8"
    nmcli connection modify "Wired" ipv4.method manual

## Common Tools
    ip addr                       # show IP addresses
    ip route                      # routing table
    ping -c 4 8.8.8.8             # test connectivity
    ss -tulpn                     # open ports

## Troubleshooting
    sudo systemctl restart NetworkManager
    journalctl -u NetworkManager`,
	},
	{
		Title:    "Users and Groups",
		Category: "security",
		URL:      "https://wiki.archlinux.org/title/Users_and_groups",
		Content: `User and group management in Arch Linux.

## User Management
    sudo useradd -m username
    sudo useradd -m -G wheel,audio,video username
    sudo passwd username
    sudo usermod -aG groupname username
    sudo userdel -r username

## Important Groups
wheel (sudo access), audio, video, storage, network, docker.

## Sudo Configuration
Always edit sudoers with visudo:
    sudo EDITOR=nano visudo
    %wheel ALL=(ALL:ALL) ALL

## Checking
    whoami
    id username
    groups username`,
	},
	{
		Title:    "Desktop Environments",
		Category: "desktop",
		URL:      "https://wiki.archlinux.org/title/Desktop_environment",
		Content: `Desktop environments available for Arch Linux and KOOMPI OS.

## KDE Plasma (recommended)
    koompi desktop kde
    # or manually:
    sudo pacman -S plasma kde-applications sddm
    sudo systemctl enable sddm

## GNOME
    koompi desktop gnome
    sudo pacman -S gnome gnome-extra gdm

## XFCE
    koompi desktop xfce
    sudo pacman -S xfce4 xfce4-goodies lightdm lightdm-gtk-greeter

## Window Managers
Hyprland (Wayland tiling), Sway (Wayland i3-like), and i3 (X11 tiling)
are available the same way: koompi desktop hyprland, sway, or i3.

## Display Managers
SDDM for KDE, GDM for GNOME, LightDM for the lightweight desktops.
Enable with: sudo systemctl enable sddm`,
	},
	{
		Title:    "SSH",
		Category: "networking",
		URL:      "https://wiki.archlinux.org/title/SSH",
		Content: `SSH (Secure Shell) for remote access.

## Server Setup
    sudo pacman -S openssh
    sudo systemctl enable --now sshd

Recommended /etc/ssh/sshd_config settings: PermitRootLogin no,
PasswordAuthentication no (after setting up keys).

## Client Usage
    ssh username@hostname
    ssh-keygen -t ed25519 -C "comment"
    ssh-copy-id username@hostname

## Port Forwarding
    ssh -L 8080:localhost:80 user@host     # local
    ssh -R 8080:localhost:80 user@host     # remote
    ssh -D 1080 user@host                  # SOCKS proxy

## File Transfer
    scp file.txt user@host:/path/
    rsync -avz directory/ user@host:/path/`,
	},
	{
		Title:    "Flatpak",
		Category: "package_management",
		URL:      "https://wiki.archlinux.org/title/Flatpak",
		Content: `Flatpak is a sandboxed application framework. KOOMPI OS includes Flatpak for easy app installation.

## Setup
    sudo pacman -S flatpak
    flatpak remote-add --if-not-exists flathub https://dl.flathub.org/repo/flathub.flatpakrepo

## Usage
    flatpak search firefox
    flatpak install flathub org.mozilla.firefox
    flatpak run org.mozilla.firefox
    flatpak list --app
    flatpak update
    flatpak uninstall --unused

## Permissions
    flatpak info --show-permissions org.mozilla.firefox
    flatpak override --user --filesystem=home org.mozilla.firefox

Flatpak apps are sandboxed and distribution-independent, at the cost of
larger disk usage.`,
	},
	{
		Title:    "Installation Guide",
		Category: "installation",
		URL:      "https://wiki.archlinux.org/title/Installation_guide",
		Content: `Arch Linux installation overview. KOOMPI OS simplifies this with the Calamares installer.

## Pre-installation
Write the ISO to USB, boot it, and connect to the internet with iwctl
for WiFi. Test with: ping archlinux.org

## Disk Partitioning
Create an EFI partition (512MB), swap, and a Btrfs root:
    mkfs.fat -F32 /dev/sda1
    mkswap /dev/sda2
    mkfs.btrfs /dev/sda3

## Installation
    mount /dev/sda3 /mnt
    btrfs subvolume create /mnt/@
    btrfs subvolume create /mnt/@home
    pacstrap /mnt base linux linux-firmware btrfs-progs
    genfstab -U /mnt >> /mnt/etc/fstab
    arch-chroot /mnt

## Configuration
Set the timezone, generate locales, set the hostname, create a user in
the wheel group, and install GRUB:
    grub-install --target=x86_64-efi --efi-directory=/boot/efi
    grub-mkconfig -o /boot/grub/grub.cfg`,
	},
}

var koompiSeedArticles = []seedArticle{
	{
		Title:    "KOOMPI OS Overview",
		Category: "koompi",
		Content: `KOOMPI OS is an immutable, AI-powered Linux distribution built on Arch Linux, designed for education.

## Key Features
- Immutable system: the root filesystem is protected with Btrfs snapshots
- AI assistant: built-in help via the koompi command
- Easy recovery: instant rollback if something breaks
- Educational focus: designed for schools and learning

## Quick Commands
    koompi help
    koompi install firefox
    koompi update                         # auto-snapshot first
    koompi desktop kde
    koompi snapshot create "description"
    koompi rollback <id>

## Getting Started
Boot KOOMPI OS, run koompi setup-yay to enable the AUR, then install
your preferred desktop with koompi desktop kde.`,
	},
	{
		Title:    "KOOMPI Snapshots",
		Category: "koompi",
		Content: `KOOMPI OS uses Btrfs snapshots for system protection.

## How It Works
Every system change creates a snapshot first. You can roll back to any
previous state; user data under /home is preserved during rollback.
Snapshots are instant and space-efficient.

## Commands
    koompi snapshot create "before experiment"
    koompi snapshot list
    koompi rollback 5
    sudo reboot                           # apply the rollback

## Automatic Snapshots
KOOMPI creates snapshots automatically before package installations,
system updates, and desktop installations. Old snapshots are cleaned up
automatically.`,
	},
}
