package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ajramos/mailbrief/internal/api"
	"github.com/ajramos/mailbrief/internal/config"
	"github.com/ajramos/mailbrief/internal/db"
	"github.com/ajramos/mailbrief/internal/services"
	"github.com/ajramos/mailbrief/internal/tui"
	"github.com/ajramos/mailbrief/internal/version"
	"github.com/ajramos/mailbrief/pkg/auth"
)

const healthTimeout = 3 * time.Second

func main() {
	configPathFlag := flag.String("config", "", "Path to JSON configuration file (default: ~/.config/mailbrief/config.json)")
	apiFlag := flag.String("api", "", "Assistant API base URL (overrides api.base_url)")
	setupFlag := flag.Bool("setup", false, "Write a default configuration file and exit")
	versionFlag := flag.Bool("version", false, "Show version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\n", version.GetVersionString())
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s                               # Run with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --api http://10.0.0.5:8000     # Use another backend\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --setup                       # Create default config\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  %s   Override default config file path\n", config.EnvConfigPath)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	configPath := config.ResolveConfigPath(*configPathFlag)

	if *setupFlag {
		if err := runSetup(configPath, config.DefaultThemesDir(), os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	mgr := config.NewManager()
	if err := mgr.LoadFromFile(configPath); err != nil {
		log.Printf("Warning: %v; using defaults", err)
		mgr.LoadFromDefaults()
	}
	if err := applyAPIOverride(mgr, *apiFlag); err != nil {
		log.Fatalf("Invalid --api value: %v", err)
	}
	cfg := mgr.GetConfig()

	logger, logFile, err := tui.OpenLogFile(cfg.LogFile)
	if err != nil {
		log.Printf("Warning: could not open log file: %v", err)
		logger = log.New(io.Discard, tui.LogPrefix, tui.LogFlags)
	} else {
		defer logFile.Close()
	}
	logger.Printf("%s starting, backend %s", version.GetVersionString(), cfg.API.BaseURL)
	if path := mgr.ConfigPath(); path != "" {
		logger.Printf("config: %s", path)
	} else {
		logger.Printf("config: built-in defaults")
	}

	ctx := context.Background()

	httpClient, err := auth.NewHTTPClient(ctx, auth.NewTokenConfig(cfg.API.Token, mgr.TokenFilePath()), cfg.GetAPITimeout())
	if err != nil {
		log.Fatalf("Could not load API credentials: %v", err)
	}

	client, err := api.NewClient(cfg.API.BaseURL, httpClient, cfg.API.MaxResults)
	if err != nil {
		log.Fatalf("Could not create API client: %v", err)
	}

	checkHealth(ctx, client, logger)

	var cache services.CacheService
	if cfg.Cache.Enabled {
		if store, err := db.Open(ctx); err == nil {
			defer store.Close()
			cache = services.NewCacheService(db.NewCacheStore(store))
		} else {
			logger.Printf("summary cache disabled: %v", err)
		}
	}

	app, err := tui.NewApp(cfg, tui.Deps{
		Remote: client,
		Cache:  cache,
		Links:  services.NewLinkService(),
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Could not start UI: %v", err)
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// applyAPIOverride replaces the backend URL from the --api flag
func applyAPIOverride(mgr *config.Manager, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	cfg := mgr.GetConfig()
	cfg.API.BaseURL = strings.TrimRight(raw, "/")
	return mgr.UpdateConfig(cfg)
}

type healthChecker interface {
	Health(ctx context.Context) error
}

// checkHealth logs whether the backend answers. The UI starts either way.
func checkHealth(ctx context.Context, hc healthChecker, logger *log.Logger) bool {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := hc.Health(ctx); err != nil {
		logger.Printf("backend health check failed: %v", services.ClassifyRemoteError(err))
		return false
	}
	logger.Printf("backend healthy")
	return true
}

// runSetup writes a default config (after confirmation) and the default theme
func runSetup(configPath, themesDir string, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "mailbrief setup")
	fmt.Fprintln(out, "===============")
	fmt.Fprintln(out)

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "Configuration file already exists: %s\n", configPath)
	} else {
		fmt.Fprintf(out, "Create default configuration file at %s? [Y/n]: ", configPath)

		response, _ := bufio.NewReader(in).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "" && response != "y" && response != "yes" {
			fmt.Fprintln(out, "Skipped.")
			return nil
		}

		if err := config.NewManager().SaveToFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Fprintf(out, "Created configuration file: %s\n", configPath)
	}

	if themesDir != "" {
		if err := config.NewThemeLoader(themesDir).CreateDefaultTheme(); err != nil {
			return fmt.Errorf("failed to create default theme: %w", err)
		}
		fmt.Fprintf(out, "Themes directory: %s\n", themesDir)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Set api.base_url to your assistant backend, then run mailbrief.")
	return nil
}
