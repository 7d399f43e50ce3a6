package tools

import (
	_ "embed"

	"github.com/recrsn/finsight/internal/document"
)

//go:embed templates/revenue.md
var revenueInstruction string

const revenueDescription = "Analyzes the financial document to identify and describe revenue trends. " +
	"The input should be a question about revenue, e.g. 'What are the revenue trends?' or 'How did revenue change?'. " +
	"This tool looks for revenue figures, comparisons (e.g. year-over-year, quarter-over-quarter), and growth rates."

// NewRevenueTrendTool builds the revenue-trend specialist.
func NewRevenueTrendTool(chat Chat, cfg ModelConfig, doc document.Context) *Tool {
	s := specialist{
		name:        "RevenueTrendAnalysis",
		persona:     "You are an AI assistant focused on identifying and explaining revenue trends from financial documents.",
		instruction: mustParseInstruction("revenue", revenueInstruction),
		chat:        chat,
		config:      cfg,
		doc:         doc,
	}
	return &Tool{
		Name:        s.name,
		Description: revenueDescription,
		Run:         s.run,
	}
}
