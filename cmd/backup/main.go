package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wordquest/internal/config"
	"wordquest/internal/database"
	"wordquest/internal/service"
)

const usage = `Usage: backup <command> [flags]

Commands:
  export    Export the database to a JSON file
  import    Import a JSON backup into the database

Run 'backup <command> -h' for command flags`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg := config.Load()
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backups := service.NewBackupService(db)

	switch cmd := os.Args[1]; cmd {
	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		output := fs.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
		fs.Parse(os.Args[2:])
		runExport(backups, *output)

	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		input := fs.String("input", "", "Input file path (required)")
		clear := fs.Bool("clear", false, "Delete existing data before import")
		fs.Parse(os.Args[2:])
		if *input == "" {
			fmt.Fprintln(os.Stderr, "Error: -input flag is required")
			fs.PrintDefaults()
			os.Exit(1)
		}
		runImport(backups, *input, *clear)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n%s\n", cmd, usage)
		os.Exit(1)
	}
}

func runExport(backups *service.BackupService, path string) {
	if path == "" {
		path = "backup_" + time.Now().Format("20060102_150405") + ".json"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	if err := backups.ExportToFile(path); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	if info, err := os.Stat(path); err == nil {
		log.Printf("Exported %s (%.2f MB)", path, float64(info.Size())/1024/1024)
	}
}

func runImport(backups *service.BackupService, path string, clear bool) {
	if _, err := os.Stat(path); err != nil {
		log.Fatalf("Cannot read input file: %v", err)
	}

	if clear && !confirm("This will delete all existing data. Type 'yes' to confirm: ") {
		log.Println("Import cancelled")
		return
	}

	if err := backups.ImportFromFile(path, clear); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Imported %s", path)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}
