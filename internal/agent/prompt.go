package agent

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed react.md
var reactPromptTemplate string

// promptData contains data to be injected into the reasoning prompt template
type promptData struct {
	ToolDescriptions string
	ToolNames        string
	ChatHistory      string
	Input            string
	Scratchpad       string
}

// renderReasoningPrompt renders the reasoning prompt for one iteration
func renderReasoningPrompt(data promptData) (string, error) {
	tmpl, err := template.New("react").Parse(reactPromptTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// renderScratchpad serializes the reasoning steps so far for the template's
// Scratchpad slot. Parse failures appear as corrective observations.
func renderScratchpad(entries []ScratchpadEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range entries {
		if e.Thought != "" {
			fmt.Fprintf(&b, "Thought: %s\n", e.Thought)
		}
		if e.Action != "" {
			fmt.Fprintf(&b, "Action: %s\n", e.Action)
			fmt.Fprintf(&b, "Action Input: %s\n", e.ActionInput)
		}
		fmt.Fprintf(&b, "Observation: %s\n", e.Observation)
	}
	return b.String()
}
