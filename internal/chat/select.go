package chat

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/recrsn/finsight/internal/document"
)

// SelectReport prompts for a PDF file name inside dataDir and loops until a
// valid file is chosen. It returns "" when the user quits.
func SelectReport(term UI, dataDir string) (string, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return "", fmt.Errorf("data directory %q not found: create it and add your PDF files there", dataDir)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q exists but is not a directory", dataDir)
	}

	for {
		name, err := term.AskInput(fmt.Sprintf("PDF file in %q (or 'quit'): ", dataDir))
		if err == io.EOF {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		if name == "" {
			continue
		}
		if strings.EqualFold(name, "quit") || strings.EqualFold(name, "exit") {
			return "", nil
		}

		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			name += ".pdf"
			term.PrintInfo("Assuming you meant: " + name)
		}

		path := filepath.Join(dataDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		term.PrintError(fmt.Sprintf("PDF file not found at %q.", path))
		available, err := document.ListPDFs(dataDir)
		if err != nil {
			term.PrintError(fmt.Sprintf("Could not list files in %q: %v", dataDir, err))
			continue
		}
		if len(available) == 0 {
			term.PrintInfo(fmt.Sprintf("No PDF files found in %q.", dataDir))
			continue
		}
		fmt.Println("Available PDF files:")
		for _, f := range available {
			fmt.Println("  - " + f)
		}
	}
}
