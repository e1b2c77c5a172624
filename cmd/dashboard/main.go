package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-dashboard"
	"github.com/goliatone/go-dashboard/internal/registry"
	"github.com/goliatone/go-dashboard/pkg/interfaces"
)

func main() {
	var (
		storageDriver = flag.String("storage", "memory", "durable storage driver: memory or sqlite")
		storageDSN    = flag.String("dsn", "dashboard.db", "sqlite DSN used with -storage sqlite")
		logLevel      = flag.String("log-level", "info", "minimum log level")
		logProvider   = flag.String("log-provider", "console", "logging provider: console, gologger, or noop")
		fetchTimeout  = flag.Duration("fetch-timeout", 10*time.Second, "per-widget fetch timeout")
		importPath    = flag.String("import", "", "replace the grid with the widgets in an exported file")
		exportDir     = flag.String("export-dir", "", "write a timestamped export file into this directory and exit")
		listTypes     = flag.Bool("types", false, "list the widget catalog and exit")
		refresh       = flag.Bool("refresh", true, "refresh all widgets before rendering")
		wait          = flag.Duration("wait", 3*time.Second, "how long to wait for fetches before rendering")
	)
	flag.Parse()

	cfg := dashboard.DefaultConfig()
	cfg.Storage.Driver = *storageDriver
	cfg.Storage.DSN = *storageDSN
	cfg.Logging.Provider = *logProvider
	cfg.Logging.Level = *logLevel
	cfg.Fetch.Timeout = *fetchTimeout

	module, err := dashboard.New(cfg)
	if err != nil {
		log.Fatalf("initialise dashboard: %v", err)
	}

	if *listTypes {
		printCatalog(module)
		return
	}

	ctx := context.Background()
	if err := module.Start(ctx); err != nil {
		log.Fatalf("start dashboard: %v", err)
	}
	defer module.Stop()

	board, err := module.Board()
	if err != nil {
		log.Fatalf("resolve board: %v", err)
	}

	if *importPath != "" {
		data, err := os.ReadFile(*importPath)
		if err != nil {
			log.Fatalf("read import file: %v", err)
		}
		if err := board.Import(ctx, data); err != nil {
			log.Fatalf("import grid: %v", err)
		}
		fmt.Printf("imported %d widgets from %s\n", len(board.Snapshot()), *importPath)
	}

	if *exportDir != "" {
		file, err := board.Export(ctx)
		if err != nil {
			log.Fatalf("export grid: %v", err)
		}
		path := filepath.Join(*exportDir, file.Name)
		if err := os.WriteFile(path, file.Data, 0o644); err != nil {
			log.Fatalf("write export file: %v", err)
		}
		fmt.Printf("exported %d widgets to %s\n", len(board.Snapshot()), path)
		return
	}

	if *refresh {
		board.RefreshAll(ctx)
		time.Sleep(*wait)
	}

	renderGrid(board, textRenderer{})
}

func printCatalog(module *dashboard.Module) {
	fmt.Println("available widget types:")
	for _, descriptor := range module.Registry().List() {
		fmt.Printf("  %-10s %s %s — %s\n", descriptor.Type, descriptor.Icon, descriptor.Title, descriptor.Description)
	}
}

func renderGrid(board dashboard.BoardService, renderer interfaces.Renderer) {
	for i, slot := range board.Slots() {
		if slot.Empty {
			fmt.Printf("[%d] + add widget\n", i)
			continue
		}

		instance := slot.Instance
		fmt.Printf("[%d] %s (%s)\n", i, instance.Title, instance.State)
		switch instance.State {
		case dashboard.StateFailed:
			fmt.Printf("    load failed: %s\n", instance.FailureReason)
		case dashboard.StateLoaded:
			if block, err := renderer.Render(instance.Type, instance.Model); err == nil {
				fmt.Print(indent(block))
			}
		}
	}
}

// textRenderer is the render collaborator for terminal output: one case per
// widget type, consuming only the display model.
type textRenderer struct{}

var _ interfaces.Renderer = textRenderer{}

func (textRenderer) Render(widgetType string, model any) (string, error) {
	return renderModel(widgetType, model), nil
}

func renderModel(widgetType string, model any) string {
	switch widgetType {
	case registry.TypeWeather:
		if display, ok := model.(*registry.WeatherDisplay); ok {
			lines := []string{fmt.Sprintf("%s %s %s", display.Icon, display.Temperature, display.Description)}
			for _, detail := range display.Details {
				lines = append(lines, detail.Label+" "+detail.Value)
			}
			return strings.Join(lines, "\n")
		}
	case registry.TypeProfile:
		if display, ok := model.(*registry.ProfileDisplay); ok {
			return fmt.Sprintf("%s\n%s\n%s", display.Name, display.Email, display.Location)
		}
	case registry.TypeCrypto:
		if display, ok := model.(*registry.CryptoDisplay); ok {
			lines := make([]string, 0, len(display.Quotes))
			for _, quote := range display.Quotes {
				lines = append(lines, fmt.Sprintf("%s %s %s (%s%%)", quote.Symbol, quote.Coin, quote.Price, quote.Change))
			}
			return strings.Join(lines, "\n")
		}
	case registry.TypeStock:
		if display, ok := model.(*registry.StockDisplay); ok {
			return fmt.Sprintf("%s %s %s (%s)", display.Symbol, display.Price, display.Change, display.ChangePercent)
		}
	case registry.TypeClock:
		if display, ok := model.(*registry.ClockDisplay); ok {
			return display.Time + "\n" + display.Date
		}
	case registry.TypeGitHub:
		if display, ok := model.(*registry.GitHubDisplay); ok {
			return fmt.Sprintf("%s\nrepos %d · followers %d · following %d", display.Name, display.Repos, display.Followers, display.Following)
		}
	case registry.TypeMovie:
		if display, ok := model.(*registry.MovieDisplay); ok {
			return fmt.Sprintf("%s (%s)\n%s · IMDb %s", display.Title, display.Year, display.Genre, display.Rating)
		}
	case registry.TypeJoke, registry.TypeFact, registry.TypeAdvice:
		if display, ok := model.(*registry.TextDisplay); ok {
			return display.Text
		}
	case registry.TypeCat, registry.TypeDog:
		if display, ok := model.(*registry.ImageDisplay); ok {
			return display.URL
		}
	}
	return fmt.Sprint(model)
}

func indent(block string) string {
	if block == "" {
		return ""
	}
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
