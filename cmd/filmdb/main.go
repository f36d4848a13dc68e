package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"filmdb/internal/config"
	"filmdb/internal/discovery"
	"filmdb/internal/domain"
	"filmdb/internal/store"
	"filmdb/internal/tmdb"
	"filmdb/internal/tui"
	"filmdb/internal/userdata"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("filmdb %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := config.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = config.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting filmdb", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	storage, err := store.NewUserDataStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data store: %w", err)
	}
	defer storage.Close()

	catalog := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.ImageBaseURL, logger)
	disc := discovery.NewService(catalog, logger, nil)

	likes := userdata.NewLikes(storage, logger)
	watchList := userdata.NewWatchList(storage, logger)
	recent := userdata.NewRecentlyWatched(storage, logger)
	history := userdata.NewSearchHistory(storage, logger)
	ratings := userdata.NewRatings(storage, logger)
	collections := userdata.NewCollections(storage, logger)

	model := tui.NewModel(catalog, disc, likes, watchList, recent, history, ratings, collections)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	// Wait for outstanding write-throughs before closing the store
	likes.Flush()
	watchList.Flush()
	recent.Flush()
	history.Flush()
	ratings.Flush()
	collections.Flush()

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when no API key is configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to filmdb!")
	fmt.Println()
	fmt.Println("You need a TMDB API key to browse the catalog.")
	fmt.Println("Get one at https://www.themoviedb.org/settings/api")
	fmt.Println()

	for {
		fmt.Print("Enter your API key (input hidden): ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		apiKey := strings.TrimSpace(string(raw))
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		fmt.Println("Verifying key...")
		if err := verifyAPIKey(apiKey, cfg, logger); err != nil {
			if errors.Is(err, domain.ErrAuthFailed) {
				fmt.Println("✗ The catalog rejected this key. Please try again.")
				fmt.Println()
				continue
			}
			return fmt.Errorf("could not verify API key: %w", err)
		}

		cfg.TMDB.APIKey = apiKey
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run filmdb again to start the application.")

	return nil
}

// verifyAPIKey makes a cheap catalog call to check the key works
func verifyAPIKey(apiKey string, cfg *config.Config, logger *slog.Logger) error {
	client := tmdb.NewClient(apiKey, cfg.TMDB.BaseURL, cfg.TMDB.ImageBaseURL, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	_, err := client.Trending(ctx, "all", domain.TrendingDay, 1)
	return err
}
