package tools

import (
	_ "embed"

	"github.com/recrsn/finsight/internal/document"
)

//go:embed templates/summary.md
var summaryInstruction string

const summaryDescription = "Generates a concise summary of the loaded financial document. " +
	"The input can be a general request for a summary, e.g. 'summarize the report'. " +
	"This tool focuses on overall key takeaways."

// NewSummaryTool builds the executive-summary specialist, bound to its model
// client and document at construction time.
func NewSummaryTool(chat Chat, cfg ModelConfig, doc document.Context) *Tool {
	s := specialist{
		name:        "FinancialSummary",
		persona:     "You are a highly skilled financial analyst AI assistant specialized in summarizing financial reports.",
		instruction: mustParseInstruction("summary", summaryInstruction),
		chat:        chat,
		config:      cfg,
		doc:         doc,
	}
	return &Tool{
		Name:        s.name,
		Description: summaryDescription,
		Run:         s.run,
	}
}
