package tools

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/recrsn/finsight/internal/document"
	"github.com/recrsn/finsight/internal/llm"
)

// specialist binds a persona and instruction template to a model client and
// a document at construction time. All three analysis tools share this shape;
// they differ only in their templates and contract strings.
type specialist struct {
	name        string
	persona     string
	instruction *template.Template
	chat        Chat
	config      ModelConfig
	doc         document.Context
}

type instructionData struct {
	Document string
	Query    string
}

// run builds the specialist prompt and performs a single two-message exchange.
// Any failure is converted to an error-tagged observation string.
func (s specialist) run(ctx context.Context, query string) string {
	var prompt bytes.Buffer
	if err := s.instruction.Execute(&prompt, instructionData{
		Document: s.doc.PromptSection(),
		Query:    query,
	}); err != nil {
		return fmt.Sprintf("Error in %s: rendering instruction: %v", s.name, err)
	}

	req := llm.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: s.config.Temperature,
		Messages: []llm.Message{
			{Role: "system", Content: s.persona},
			{Role: "user", Content: prompt.String()},
		},
	}

	resp, err := s.chat.CreateChatCompletion(ctx, req)
	if err != nil {
		return fmt.Sprintf("Error in %s: %v", s.name, err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Sprintf("Error in %s: empty model response", s.name)
	}

	return resp.Choices[0].Message.Content
}

func mustParseInstruction(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}
