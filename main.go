package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/todos-tui/internal/config"
	"github.com/pdxmph/todos-tui/internal/db"
	"github.com/pdxmph/todos-tui/internal/provider"
	"github.com/pdxmph/todos-tui/internal/tui"
)

func main() {
	initDB := flag.Bool("init", false, "create a new empty database and exit")
	fixtures := flag.Bool("fixtures", false, "create a database with sample tasks and exit")
	dbPath := flag.String("db", "", "database path (overrides config)")
	configPath := flag.String("config", "", "config file path")
	flag.Parse()

	// Load config
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatal(err)
	}

	path := cfg.Database.Path
	if *dbPath != "" {
		path = *dbPath
	}

	if *initDB {
		if err := db.Initialize(path); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Created database at %s\n", path)
		return
	}

	if *fixtures {
		if err := db.CreateFixturesDatabase(path); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Created fixtures database at %s\n", path)
		return
	}

	// Open database
	database, err := db.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Create model over the provider
	model, err := tui.New(provider.New(database))
	if err != nil {
		log.Fatal(err)
	}

	// Start the program
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
