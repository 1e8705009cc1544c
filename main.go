package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/surendranb/runsight-core-sub000/internal/config"
	"github.com/surendranb/runsight-core-sub000/internal/importer"
	"github.com/surendranb/runsight-core-sub000/internal/service"
	"github.com/surendranb/runsight-core-sub000/internal/store"
	"github.com/surendranb/runsight-core-sub000/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	importPath := flag.String("import", "", "import a JSON run export and exit")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if err := setupLogging(*verbose); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Set your resting and max heart rate for accurate training metrics,")
		fmt.Println("then run again.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if *importPath != "" {
		return runImport(db, *importPath)
	}

	count, err := db.CountRuns()
	if err != nil {
		return fmt.Errorf("counting runs: %w", err)
	}
	if count == 0 {
		fmt.Println("No runs in the database yet.")
		fmt.Println("Import a JSON run export first:")
		fmt.Printf("  %s -import runs.json\n", filepath.Base(os.Args[0]))
		return nil
	}

	svc := service.NewService(db, cfg.Athlete)

	// Start the TUI
	app := tui.NewApp(db, svc, cfg.Display)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func runImport(db *store.Store, path string) error {
	summary, err := importer.New(db).ImportFile(path)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	fmt.Printf("Imported %d of %d runs (%d skipped).\n",
		summary.Imported, summary.Total, summary.Skipped)
	return nil
}

// setupLogging sends structured logs to a file so they don't fight the
// TUI for the terminal.
func setupLogging(verbose bool) error {
	configDir, err := config.GetConfigDir()
	if err != nil {
		return fmt.Errorf("resolving log path: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(configDir, "runsight.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return nil
}
