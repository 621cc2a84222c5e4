package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Launcher opens trailer and homepage URLs in an external program
type Launcher struct {
	command string   // configured trailer command, empty for detection
	args    []string // additional arguments for the command
	logger  *slog.Logger

	// start runs a command without waiting for it; replaced in tests
	start func(name string, args ...string) error
	// lookPath reports whether a command is on PATH; replaced in tests
	lookPath func(name string) (string, error)
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // Command path: "mpv", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command
}

// trailerPlayers are video players that stream YouTube/Vimeo URLs directly
// (through yt-dlp), tried before falling back to the browser.
var trailerPlayers = map[string]map[string][]launchPath{
	"mpv": {
		"darwin":  {{path: "mpv"}},
		"linux":   {{path: "mpv"}},
		"windows": {{path: "mpv"}},
	},
	"iina": {
		"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
	},
	"celluloid": {
		"linux": {{path: "celluloid"}},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "mpv"},
	"linux":   {"mpv", "celluloid"},
	"windows": {"mpv"},
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		start:    startDetached,
		lookPath: exec.LookPath,
	}
}

func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// OpenTrailer opens a video URL in the configured command, a detected video
// player, or the system default handler, in that order.
func (l *Launcher) OpenTrailer(rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}

	// Tier 1: User configured a specific command
	if l.command != "" {
		args := append(append([]string{}, l.args...), rawURL)
		l.logger.Info("opening trailer with configured command", "command", l.command, "url", rawURL)
		return l.start(l.command, args...)
	}

	// Tier 2: Try candidate players
	if name, err := l.detectAndLaunch(rawURL); err == nil {
		l.logger.Info("opened trailer with detected player", "player", name)
		return nil
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	l.logger.Info("no candidate players found, using system default")
	return l.OpenPage(rawURL)
}

// OpenPage opens a URL using the system default handler
func (l *Launcher) OpenPage(rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}
	name, args := defaultOpener(runtime.GOOS, rawURL)
	l.logger.Info("launching with system default", "os", runtime.GOOS, "url", rawURL)
	return l.start(name, args...)
}

// detectAndLaunch tries candidate players in order and returns the one that
// started.
func (l *Launcher) detectAndLaunch(rawURL string) (string, error) {
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"] // default
	}

	for _, playerName := range candidates {
		for _, lp := range trailerPlayers[playerName][runtime.GOOS] {
			var err error
			if appName, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
				args := append(append([]string{}, lp.openFlags...), "-a", appName, rawURL)
				err = l.start("open", args...)
			} else if _, err = l.lookPath(lp.path); err == nil {
				err = l.start(lp.path, rawURL)
			}

			if err == nil {
				return playerName, nil
			}
			l.logger.Debug("launch path not available", "player", playerName, "path", lp.path, "error", err)
		}
	}

	return "", fmt.Errorf("no candidate players found")
}

// defaultOpener returns the system command that opens a URL on goos
func defaultOpener(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "cmd", []string{"/c", "start", "", rawURL}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{rawURL}
	}
}

// validateURL accepts only absolute http(s) URLs.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open %q: not an http(s) url", rawURL)
	}
	return nil
}

// CommandName returns the base name of the configured command, or "" when
// detection is used.
func (l *Launcher) CommandName() string {
	if l.command == "" {
		return ""
	}
	base := filepath.Base(l.command)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
