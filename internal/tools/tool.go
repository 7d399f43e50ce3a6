package tools

import (
	"context"

	"github.com/recrsn/finsight/internal/llm"
)

// Tool is a named, described analysis function exposed to the reasoning loop.
// Description is rendered verbatim into the reasoning prompt and is what the
// model selects on; treat it as a contract string, not decoration.
//
// Run never returns an error: failures are converted to an error-tagged
// observation string so one failing tool cannot abort the reasoning loop.
type Tool struct {
	Name        string
	Description string
	Run         func(ctx context.Context, query string) string
}

// Chat is the slice of the language-model client the tools depend on.
type Chat interface {
	CreateChatCompletion(ctx context.Context, req llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error)
}

// ModelConfig selects the model and temperature for tool calls
type ModelConfig struct {
	Model       string
	Temperature float64
}
