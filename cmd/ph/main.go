package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/ph/internal/exporter"
	"github.com/nikbrunner/ph/internal/importer"
	"github.com/nikbrunner/ph/internal/picker"
	"github.com/nikbrunner/ph/internal/search"
	"github.com/nikbrunner/ph/internal/storage"
	"github.com/nikbrunner/ph/internal/sweeper"
	"github.com/nikbrunner/ph/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: ph import <file.json> [--replace]\n")
				os.Exit(1)
			}
			replace := len(os.Args) >= 4 && os.Args[3] == "--replace"
			runImport(os.Args[2], replace)
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "export-md":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExportMarkdown(outputPath)
			return
		case "doctor":
			fix := len(os.Args) >= 3 && os.Args[2] == "--fix"
			runDoctor(fix)
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `ph - vim-style prompt manager

Usage:
  ph                        Open interactive TUI
  ph <query>                Quick search → select → copy to clipboard
  ph import <file> [--replace]
                            Import a JSON export document
                            (--replace clears local data first)
  ph export [path]          Export all data as JSON
  ph export-md [path]       Export all prompts as Markdown
  ph doctor [--fix]         Find (and optionally clear) dangling
                            folder/tag references
  ph help                   Show this help

TUI Keybindings:
  j/k         Move down/up
  h/l         Navigate back / enter folder
  gg/G        Jump to top/bottom
  a/A         Add prompt/folder
  e           Edit selected item
  d           Delete
  y           Copy prompt content to clipboard
  v           Version history / restore
  /           Search title and content
  ?           Help overlay
  q           Quit

Data Storage:
  ~/.config/ph/prompts.db
`
	fmt.Print(help)
}

// openStore opens the default database, exiting on failure.
func openStore() *storage.Store {
	dbPath, err := storage.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting database path: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func loadConfig() *storage.Config {
	configPath, err := storage.DefaultConfigFilePath()
	if err != nil {
		cfg := storage.DefaultConfig()
		return &cfg
	}
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		defaults := storage.DefaultConfig()
		return &defaults
	}
	return cfg
}

// runTUI runs the full interactive TUI.
func runTUI() {
	store := openStore()
	defer store.Close()

	cfg := loadConfig()
	app := tui.NewApp(tui.AppParams{
		Repo:           store,
		ConfirmDeletes: &cfg.ConfirmDeletes,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a fuzzy title search and copies the selected
// prompt's content to the clipboard.
func runQuickSearch(query string) {
	store := openStore()
	defer store.Close()

	prompts, err := store.ListPrompts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prompts: %v\n", err)
		os.Exit(1)
	}

	results := search.FuzzyPrompts(prompts, query)

	if len(results) == 0 {
		fmt.Printf("No prompts found for '%s'\n", query)
		os.Exit(0)
	}

	selected := results[0].Prompt
	if len(results) > 1 {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedPrompt()
	}

	if selected == nil {
		os.Exit(0)
	}

	if err := clipboard.WriteAll(selected.Content); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing clipboard: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Copied: %s\n", selected.Title)
}

// runImport handles the import subcommand.
func runImport(filePath string, replace bool) {
	store := openStore()
	defer store.Close()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	doc, err := importer.ParseDocument(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing document: %v\n", err)
		os.Exit(1)
	}

	result, err := store.Import(doc, !replace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d prompts, %d folders, %d tags",
		result.PromptsAdded, result.FoldersAdded, result.TagsAdded)
	skipped := result.PromptsSkipped + result.FoldersSkipped + result.TagsSkipped
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	store := openStore()
	defer store.Close()

	if outputPath == "" {
		cfg := loadConfig()
		outputPath = exporter.DefaultJSONPath(cfg.ExportDir)
	}

	doc, err := store.Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading data: %v\n", err)
		os.Exit(1)
	}

	data, err := exporter.ExportJSON(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding export: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d prompts, %d folders, %d tags to %s\n",
		len(doc.Prompts), len(doc.Folders), len(doc.Tags), outputPath)
}

// runExportMarkdown handles the export-md subcommand.
func runExportMarkdown(outputPath string) {
	store := openStore()
	defer store.Close()

	if outputPath == "" {
		cfg := loadConfig()
		outputPath = exporter.DefaultMarkdownPath(cfg.ExportDir)
	}

	doc, err := store.Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading data: %v\n", err)
		os.Exit(1)
	}

	md := exporter.ExportMarkdown(doc)

	if err := os.WriteFile(outputPath, []byte(md), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d prompts to %s\n", len(doc.Prompts), outputPath)
}

// runDoctor scans for dangling folder/tag references.
func runDoctor(fix bool) {
	store := openStore()
	defer store.Close()

	doc, err := store.Snapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading data: %v\n", err)
		os.Exit(1)
	}

	findings := sweeper.Scan(doc.Prompts, doc.Folders, doc.Tags)
	if len(findings) == 0 {
		fmt.Println("No dangling references found")
		return
	}

	for _, f := range findings {
		switch f.Kind {
		case sweeper.MissingFolder:
			fmt.Printf("prompt %q references missing folder %s\n", f.Prompt.Title, f.RefID)
		case sweeper.MissingTag:
			fmt.Printf("prompt %q references missing tag %s\n", f.Prompt.Title, f.RefID)
		}
	}

	if !fix {
		fmt.Printf("%d dangling references. Run 'ph doctor --fix' to clear them.\n", len(findings))
		return
	}

	repaired, err := sweeper.Repair(store, findings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error repairing: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Repaired %d prompts\n", repaired)
}
