package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const uploadTimeout = 5 * time.Minute

// Uploader pushes report files to the provider's file API and deletes them
// at session end.
type Uploader struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewUploader creates a file API client
func NewUploader(baseURL, apiKey string) *Uploader {
	return &Uploader{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: uploadTimeout,
		},
	}
}

type uploadResponse struct {
	Name        string `json:"name"`
	URI         string `json:"uri"`
	MIMEType    string `json:"mime_type"`
	DisplayName string `json:"display_name"`
}

// Upload sends the file at path to the provider and returns a handle to it.
func (u *Uploader) Upload(ctx context.Context, path string) (RemoteHandle, error) {
	file, err := os.Open(path)
	if err != nil {
		return RemoteHandle{}, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return RemoteHandle{}, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return RemoteHandle{}, fmt.Errorf("copying file contents: %w", err)
	}
	if err := writer.Close(); err != nil {
		return RemoteHandle{}, fmt.Errorf("finalizing form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", u.baseURL+"/files", &buf)
	if err != nil {
		return RemoteHandle{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.Header.Set("Authorization", "Bearer "+u.apiKey)

	resp, err := u.httpClient.Do(httpReq)
	if err != nil {
		return RemoteHandle{}, fmt.Errorf("uploading file: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RemoteHandle{}, fmt.Errorf("reading upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return RemoteHandle{}, fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, body)
	}

	var uploaded uploadResponse
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return RemoteHandle{}, fmt.Errorf("unmarshaling upload response: %w", err)
	}

	display := uploaded.DisplayName
	if display == "" {
		display = filepath.Base(path)
	}

	return RemoteHandle{
		ResourceName: uploaded.Name,
		URI:          uploaded.URI,
		MIMEType:     uploaded.MIMEType,
		Display:      display,
	}, nil
}

// Delete removes an uploaded file. Callers treat failures as non-fatal; the
// provider garbage-collects stale uploads eventually.
func (u *Uploader) Delete(ctx context.Context, handle RemoteHandle) error {
	if handle.ResourceName == "" {
		return nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, "DELETE", u.baseURL+"/files/"+handle.ResourceName, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+u.apiKey)

	resp, err := u.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("delete failed with status %d", resp.StatusCode)
	}
	return nil
}
