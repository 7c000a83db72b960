package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/checklist-go/internal/checklist"
	"github.com/nibzard/checklist-go/internal/config"
	"github.com/nibzard/checklist-go/internal/store"
)

// doctorCommand checks the project root, config, store and the stored
// checklist state without writing anything.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("checklist doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("Checklist Doctor")
	fmt.Println("================")
	fmt.Println()

	allOK := true

	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if info, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else if !info.IsDir() {
		fmt.Println("  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Println("Config:")
	configOK := true
	if err := cfg.Validate(); err != nil {
		fmt.Printf("  ❌ %v\n", err)
		configOK = false
		allOK = false
	} else {
		fmt.Printf("  ✅ Store backend: %s\n", cfg.StoreBackend)
		fmt.Printf("  ✅ Log level: %s (%s)\n", cfg.LogLevel, cfg.LogFormat)
	}
	fmt.Println()

	if configOK && !checkStore(cfg, *verbose) {
		allOK = false
	}

	fmt.Printf("Log directory: %s\n", cfg.LogDir)
	if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created by the TUI)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Checklist may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkStore reports on the store location and the decode status of both
// keys. Malformed values are warnings since the view falls back to defaults.
func checkStore(cfg *config.Config, verbose bool) bool {
	if cfg.StoreBackend == store.BackendMemory {
		fmt.Println("Store: memory")
		fmt.Println("  ⚠️  Nothing is persisted between runs")
		fmt.Println()
		return true
	}

	fmt.Printf("Store: %s (%s)\n", cfg.StorePath, cfg.StoreBackend)
	info, err := os.Stat(cfg.StorePath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (defaults are shown until the first toggle)")
			fmt.Println()
			return true
		}
		fmt.Printf("  ❌ Error: %v\n", err)
		fmt.Println()
		return false
	}
	if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		fmt.Println()
		return false
	}

	backend, err := store.Open(cfg.StoreBackend, cfg.StorePath)
	if err != nil {
		fmt.Printf("  ❌ Open error: %v\n", err)
		fmt.Println()
		return false
	}
	defer backend.Close()
	fmt.Println("  ✅ Opened")

	ok := true

	rawRows, found, err := backend.Get(checklist.KeyRows)
	if err != nil {
		fmt.Printf("  ❌ Read %s: %v\n", checklist.KeyRows, err)
		ok = false
		found = false
	}
	rows, rowsStatus, rowsErr := checklist.DecodeRows(rawRows, found)
	reportDecode(checklist.KeyRows, rowsStatus, rowsErr)

	rawProgress, found, err := backend.Get(checklist.KeyProgress)
	if err != nil {
		fmt.Printf("  ❌ Read %s: %v\n", checklist.KeyProgress, err)
		ok = false
		found = false
	}
	progress, progressStatus, progressErr := checklist.DecodeProgress(rawProgress, found)
	reportDecode(checklist.KeyProgress, progressStatus, progressErr)

	if rowsStatus == checklist.DecodeValid && len(rows) == 0 {
		fmt.Println("  ⚠️  Stored rows are empty (defaults will be shown)")
	}
	if rowsStatus == checklist.DecodeValid && progressStatus == checklist.DecodeValid && len(rows) > 0 {
		state := checklist.State{Rows: rows, Progress: progress}
		if state.Consistent() {
			fmt.Printf("  ✅ Progress %s matches %d/%d selected\n",
				checklist.FormatPercent(progress), checklist.CountSelected(rows), len(rows))
		} else {
			fmt.Printf("  ⚠️  Progress %v does not match rows (expected %v)\n",
				progress, checklist.ComputeProgress(rows))
		}
	}

	if verbose && rowsStatus == checklist.DecodeValid {
		fmt.Printf("  Rows: %d\n", len(rows))
		for i, row := range rows {
			mark := " "
			if row.Selected {
				mark = "x"
			}
			fmt.Printf("    %d [%s] %s: %s (%s)\n", i, mark, row.Category, row.Description, row.Date)
		}
	}
	fmt.Println()
	return ok
}

func reportDecode(key string, status checklist.DecodeStatus, err error) {
	switch status {
	case checklist.DecodeValid:
		fmt.Printf("  ✅ %s: valid\n", key)
	case checklist.DecodeAbsent:
		fmt.Printf("  ⚠️  %s: not stored\n", key)
	default:
		fmt.Printf("  ⚠️  %s: malformed (%v)\n", key, err)
	}
}
