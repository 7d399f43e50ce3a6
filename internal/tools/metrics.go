package tools

import (
	_ "embed"

	"github.com/recrsn/finsight/internal/document"
)

//go:embed templates/metrics.md
var metricsInstruction string

const metricsDescription = "Extracts and lists key financial metrics from the document. " +
	"The input should be a request for key metrics, e.g. 'What are the key financial metrics?' or 'List important financial figures'. " +
	"This tool identifies metrics like Net Income, EPS, Profit Margins, Operating Expenses, Cash Flow, etc., with their values."

// NewMetricsTool builds the key-metrics extraction specialist.
func NewMetricsTool(chat Chat, cfg ModelConfig, doc document.Context) *Tool {
	s := specialist{
		name:        "KeyFinancialMetricsExtraction",
		persona:     "You are an AI assistant designed to extract and list key financial metrics accurately from reports.",
		instruction: mustParseInstruction("metrics", metricsInstruction),
		chat:        chat,
		config:      cfg,
		doc:         doc,
	}
	return &Tool{
		Name:        s.name,
		Description: metricsDescription,
		Run:         s.run,
	}
}
