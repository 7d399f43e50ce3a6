package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText extracts the plain text of every page of the PDF at path and
// concatenates them in page order.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d of %s: %w", i, path, err)
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// LoadInlineText extracts a local PDF into an InlineText context.
func LoadInlineText(path string) (InlineText, error) {
	if _, err := os.Stat(path); err != nil {
		return InlineText{}, fmt.Errorf("accessing PDF: %w", err)
	}

	text, err := ExtractText(path)
	if err != nil {
		return InlineText{}, err
	}
	if strings.TrimSpace(text) == "" {
		return InlineText{}, fmt.Errorf("no text extracted from %s", path)
	}

	return InlineText{
		Name: filepath.Base(path),
		Text: text,
	}, nil
}

// ListPDFs returns the PDF file names available in dir, sorted.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
