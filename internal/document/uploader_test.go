package document

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestUploaderUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q3-report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	var gotAuth, gotFilename string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/files" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading form file: %v", err)
		}
		gotFilename = header.Filename
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"name":"files/abc123","uri":"https://files.example.com/abc123","mime_type":"application/pdf","display_name":"q3-report.pdf"}`)
	}))
	defer server.Close()

	uploader := NewUploader(server.URL, "test-key")
	handle, err := uploader.Upload(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handle.ResourceName != "files/abc123" {
		t.Errorf("unexpected resource name: %q", handle.ResourceName)
	}
	if handle.URI != "https://files.example.com/abc123" {
		t.Errorf("unexpected URI: %q", handle.URI)
	}
	if handle.Display != "q3-report.pdf" {
		t.Errorf("unexpected display name: %q", handle.Display)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if gotFilename != "q3-report.pdf" {
		t.Errorf("unexpected uploaded filename: %q", gotFilename)
	}
}

func TestUploaderUploadServerError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	uploader := NewUploader(server.URL, "test-key")
	if _, err := uploader.Upload(context.Background(), path); err == nil {
		t.Error("expected error for server failure")
	}
}

func TestUploaderDelete(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("unexpected method: %s", r.Method)
		}
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	uploader := NewUploader(server.URL, "test-key")
	err := uploader.Delete(context.Background(), RemoteHandle{ResourceName: "files/abc123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/files/files/abc123" {
		t.Errorf("unexpected delete path: %q", gotPath)
	}
}

func TestUploaderDeleteFailureIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	uploader := NewUploader(server.URL, "test-key")
	if err := uploader.Delete(context.Background(), RemoteHandle{ResourceName: "files/abc123"}); err == nil {
		t.Error("expected error for rejected delete")
	}
}

func TestUploaderDeleteEmptyHandleIsNoop(t *testing.T) {
	uploader := NewUploader("http://127.0.0.1:1", "test-key")
	if err := uploader.Delete(context.Background(), RemoteHandle{}); err != nil {
		t.Errorf("empty handle must not hit the network: %v", err)
	}
}
