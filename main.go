package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/recrsn/finsight/internal/agent"
	"github.com/recrsn/finsight/internal/chat"
	"github.com/recrsn/finsight/internal/config"
	"github.com/recrsn/finsight/internal/document"
	"github.com/recrsn/finsight/internal/llm"
	"github.com/recrsn/finsight/internal/tools"
	"github.com/recrsn/finsight/internal/ui"
)

func main() {
	// Credentials may live in a .env file next to the binary
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		fmt.Println("Using default configuration")
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	dataDir, err := config.GetDataDir()
	if err != nil {
		fmt.Printf("Error preparing data directory: %v\n", err)
		os.Exit(1)
	}

	term, err := ui.NewTerminal(cfg.UI, filepath.Join(dataDir, "history"))
	if err != nil {
		fmt.Printf("Error creating UI: %v\n", err)
		os.Exit(1)
	}
	defer term.Close()

	term.ShowHeader()

	client := llm.NewClient(cfg.Provider.Endpoint, cfg.Provider.APIKey, llm.NewAPILogger(dataDir))

	pdfPath, err := chat.SelectReport(term, cfg.Document.DataDir)
	if err != nil {
		term.PrintError(err.Error())
		os.Exit(1)
	}
	if pdfPath == "" {
		term.PrintInfo("No PDF file selected. Exiting.")
		return
	}

	doc, cleanup, err := loadDocument(cfg, term, pdfPath)
	if err != nil {
		term.PrintError(fmt.Sprintf("Could not load the report: %v", err))
		os.Exit(1)
	}

	modelCfg := tools.ModelConfig{
		Model:       cfg.Provider.Model,
		Temperature: cfg.Provider.Temperature,
	}
	registry, err := tools.NewRegistry(
		tools.NewSummaryTool(client, modelCfg, doc),
		tools.NewRevenueTrendTool(client, modelCfg, doc),
		tools.NewMetricsTool(client, modelCfg, doc),
	)
	if err != nil {
		term.PrintError(fmt.Sprintf("Error building tool registry: %v", err))
		os.Exit(1)
	}

	memory := agent.NewMemory(cfg.Agent.MemoryWindow)
	loop := agent.NewLoop(client, registry, memory, agent.Config{
		Model:         cfg.Provider.Model,
		Temperature:   cfg.Provider.Temperature,
		MaxIterations: cfg.Agent.MaxIterations,
	}, term.Debugf)

	session := chat.NewSession(term, cfg, registry, loop, memory, doc, cleanup)
	if err := session.Start(); err != nil {
		term.PrintError(fmt.Sprintf("Error in chat session: %v", err))
		os.Exit(1)
	}
	term.PrintSuccess("Session ended. Goodbye!")
}

// loadDocument resolves the configured document mode into a Context and a
// session-end cleanup hook.
func loadDocument(cfg config.Config, term *ui.Terminal, pdfPath string) (document.Context, func(ctx context.Context) error, error) {
	switch cfg.Document.Mode {
	case config.ModeUpload:
		endpoint := cfg.Document.UploadEndpoint
		if endpoint == "" {
			endpoint = cfg.Provider.Endpoint
		}
		uploader := document.NewUploader(endpoint, cfg.Provider.APIKey)

		spinner := term.StartSpinner(fmt.Sprintf("Uploading %s", filepath.Base(pdfPath)))
		handle, err := uploader.Upload(context.Background(), pdfPath)
		if err != nil {
			term.StopSpinnerFail(spinner, "Upload failed")
			return nil, nil, err
		}
		term.StopSpinner(spinner, fmt.Sprintf("Uploaded as %s", handle.URI))

		cleanup := func(ctx context.Context) error {
			return uploader.Delete(ctx, handle)
		}
		return handle, cleanup, nil

	default:
		spinner := term.StartSpinner(fmt.Sprintf("Extracting text from %s", filepath.Base(pdfPath)))
		doc, err := document.LoadInlineText(pdfPath)
		if err != nil {
			term.StopSpinnerFail(spinner, "Extraction failed")
			return nil, nil, err
		}
		term.StopSpinner(spinner, fmt.Sprintf("Extracted %d characters", len(doc.Text)))
		return doc, nil, nil
	}
}
