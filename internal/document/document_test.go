package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInlineTextPromptSection(t *testing.T) {
	doc := InlineText{Name: "q3.pdf", Text: "Total Revenue: $100"}

	if doc.DisplayName() != "q3.pdf" {
		t.Errorf("unexpected display name: %q", doc.DisplayName())
	}
	section := doc.PromptSection()
	if !strings.Contains(section, "Total Revenue: $100") {
		t.Errorf("document text missing from prompt section: %q", section)
	}
	if !strings.Contains(section, "Financial Report Text:") {
		t.Errorf("prompt section missing its header: %q", section)
	}
}

func TestRemoteHandlePromptSection(t *testing.T) {
	handle := RemoteHandle{
		ResourceName: "files/abc123",
		URI:          "https://files.example.com/abc123",
		MIMEType:     "application/pdf",
		Display:      "q3.pdf",
	}

	if handle.DisplayName() != "q3.pdf" {
		t.Errorf("unexpected display name: %q", handle.DisplayName())
	}
	section := handle.PromptSection()
	if !strings.Contains(section, "https://files.example.com/abc123") {
		t.Errorf("URI missing from prompt section: %q", section)
	}
	// The internal resource name is for deletion only, not for prompting.
	if strings.Contains(section, "files/abc123") {
		t.Errorf("resource name leaked into prompt section: %q", section)
	}
}

func TestListPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt", "C.PDF"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}

	names, err := ListPDFs(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"C.PDF", "a.pdf", "b.pdf"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("name %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestListPDFsMissingDir(t *testing.T) {
	if _, err := ListPDFs(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoadInlineTextMissingFile(t *testing.T) {
	if _, err := LoadInlineText(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}
