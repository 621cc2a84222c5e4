package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/catalog/tmdb"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/mmcdole/reel/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// changeBuffer is how many store notifications may queue before the UI reads them
const changeBuffer = 64

func main() {
	var (
		showVersion bool
		reset       bool
		ephemeral   bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&reset, "reset", false, "clear the saved session, favorites and preferences")
	flag.BoolVar(&ephemeral, "ephemeral", false, "keep all state in memory for this run")
	flag.Parse()

	if showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if err := run(reset, ephemeral); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(reset, ephemeral bool) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting reel", "version", Version)

	// First run: ask for the catalog API key
	if !cfg.IsConfigured() {
		apiKey, err := promptAPIKey()
		if err != nil {
			return err
		}
		if err := adapter.SaveAPIKey(apiKey); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		cfg.Catalog.APIKey = apiKey
		fmt.Printf("✓ API key saved to %s\n", adapter.ConfigFilePath())
	}

	client, err := tmdb.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Language, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog client: %w", err)
	}

	prefs := openStore(cfg.Storage.Path, ephemeral, logger)
	defer prefs.Close()

	if reset {
		cleared := prefs.Keys()
		if err := prefs.Clear(); err != nil {
			return fmt.Errorf("failed to reset preferences: %w", err)
		}
		logger.Info("preferences cleared", "keys", cleared)
		fmt.Printf("Cleared %d saved preferences\n", len(cleared))
	}

	// Store notifications reach the UI through a buffered channel
	changes := make(chan domain.Change, changeBuffer)
	observer := tui.NewChannelObserver(changes)

	sessionSvc := service.NewSessionService(prefs, observer, logger)
	catalogSvc := service.NewCatalogService(client, prefs, observer, logger)
	themeSvc := service.NewThemeService(prefs, observer, logger)
	detailSvc := service.NewDetailService(client, logger)

	sessionSvc.Restore()
	lastQuery := catalogSvc.Restore()
	styles.Apply(themeSvc.Restore(cfg.UI.DefaultTheme))

	launcher := adapter.NewLauncher(cfg.Trailer.Command, cfg.Trailer.Args, logger)

	model := tui.NewModel(tui.Services{
		Session: sessionSvc,
		Catalog: catalogSvc,
		Theme:   themeSvc,
		Detail:  detailSvc,
		Opener:  launcher,
		Changes: changes,

		ImageBaseURL: cfg.Catalog.ImageBaseURL,
	}, lastQuery)

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI", "persistent", prefs.Persistent(), "opener", launcher.CommandName())

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// openStore opens the preferences database, degrading to memory-only when
// it cannot be opened or when the run is ephemeral
func openStore(path string, ephemeral bool, logger *slog.Logger) *store.PrefStore {
	if !ephemeral {
		prefs, err := store.NewPrefStore(path)
		if err == nil {
			return prefs
		}
		logger.Warn("preferences unavailable, using memory only", "path", path, "error", err)
	}
	prefs, _ := store.NewPrefStore("")
	return prefs
}

// promptAPIKey reads the API key without echoing it
func promptAPIKey() (string, error) {
	fmt.Println()
	fmt.Println("Welcome to reel!")
	fmt.Println()
	fmt.Println("reel needs a TMDB API key. Create one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	for {
		fmt.Print("API key: ")
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}

		apiKey := strings.TrimSpace(string(keyBytes))
		if apiKey != "" {
			return apiKey, nil
		}
		fmt.Println("API key cannot be empty. Please try again.")
	}
}
