package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/recrsn/finsight/internal/agent"
	"github.com/recrsn/finsight/internal/config"
	"github.com/recrsn/finsight/internal/document"
	"github.com/recrsn/finsight/internal/llm"
	"github.com/recrsn/finsight/internal/tools"
)

// recordingUI captures terminal output per method so tests can assert on
// which rendering path an answer took.
type recordingUI struct {
	agentMessages []string
	chunks        []string
	infos         []string
	errs          []string
	labelCount    int
	doneCount     int
}

func (u *recordingUI) AskInput(string) (string, error)  { return "", nil }
func (u *recordingUI) PrintAgentLabel()                 { u.labelCount++ }
func (u *recordingUI) PrintAnswerChunk(chunk string)    { u.chunks = append(u.chunks, chunk) }
func (u *recordingUI) PrintAnswerDone()                 { u.doneCount++ }
func (u *recordingUI) PrintAgentMessage(message string) { u.agentMessages = append(u.agentMessages, message) }
func (u *recordingUI) PrintError(message string)        { u.errs = append(u.errs, message) }
func (u *recordingUI) PrintSuccess(string)              {}
func (u *recordingUI) PrintInfo(message string)         { u.infos = append(u.infos, message) }
func (u *recordingUI) ClearScreen()                     {}

// cannedModel replays scripted reasoning outputs, one per call.
type cannedModel struct {
	outputs []string
	calls   int
}

func (m *cannedModel) StreamChatCompletion(_ context.Context, _ llm.ChatCompletionRequest, onDelta func(string)) (string, error) {
	if m.calls >= len(m.outputs) {
		return "", errors.New("no canned output available")
	}
	out := m.outputs[m.calls]
	m.calls++
	if onDelta != nil {
		onDelta(out)
	}
	return out, nil
}

func newTestSession(t *testing.T, ui UI, model agent.Model, maxIterations int) *Session {
	t.Helper()
	registry, err := tools.NewRegistry(&tools.Tool{
		Name:        "FinancialSummary",
		Description: "summarizes the report",
		Run:         func(context.Context, string) string { return "partial figures" },
	})
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	memory := agent.NewMemory(5)
	loop := agent.NewLoop(model, registry, memory, agent.Config{
		Model:         "test-model",
		MaxIterations: maxIterations,
	}, nil)
	doc := document.InlineText{Name: "report.pdf", Text: "Total Revenue: $100"}
	return NewSession(ui, config.Config{}, registry, loop, memory, doc, nil)
}

func TestSessionStreamsFinalAnswer(t *testing.T) {
	ui := &recordingUI{}
	model := &cannedModel{outputs: []string{
		"Thought: I now know the final answer\nFinal Answer: Revenue was $100.",
	}}
	s := newTestSession(t, ui, model, 5)

	s.runQuery("how much revenue?")

	if got := strings.Join(ui.chunks, ""); got != "Revenue was $100." {
		t.Errorf("unexpected streamed answer: %q", got)
	}
	if len(ui.agentMessages) != 0 {
		t.Errorf("streamed answers must not be re-rendered: %v", ui.agentMessages)
	}
	if ui.labelCount != 1 || ui.doneCount != 1 {
		t.Errorf("expected one label and one terminator, got %d/%d", ui.labelCount, ui.doneCount)
	}
}

func TestSessionRendersNonStreamedAnswerAsMarkdown(t *testing.T) {
	ui := &recordingUI{}
	dispatch := "Thought: more data\nAction: FinancialSummary\nAction Input: again"
	s := newTestSession(t, ui, &cannedModel{outputs: []string{dispatch}}, 1)

	s.runQuery("summarize")

	if len(ui.chunks) != 0 {
		t.Errorf("degraded outcome must not stream: %v", ui.chunks)
	}
	if len(ui.agentMessages) != 1 || ui.agentMessages[0] != "partial figures" {
		t.Errorf("expected the best-effort answer as a complete message, got %v", ui.agentMessages)
	}
	if len(ui.infos) == 0 || !strings.Contains(ui.infos[0], "budget") {
		t.Errorf("expected a budget note, got %v", ui.infos)
	}
}

func TestSessionReportsTransportErrorAndContinues(t *testing.T) {
	ui := &recordingUI{}
	s := newTestSession(t, ui, &cannedModel{}, 5) // no outputs: first call errors

	s.runQuery("q")

	if len(ui.errs) != 1 {
		t.Fatalf("expected one error report, got %v", ui.errs)
	}
	if len(ui.chunks) != 0 || len(ui.agentMessages) != 0 {
		t.Error("a failed exchange must not print an answer")
	}
}

func TestSessionCloseSwallowsDeleteFailure(t *testing.T) {
	ui := &recordingUI{}
	calls := 0
	cleanup := func(context.Context) error {
		calls++
		return errors.New("delete failed with status 403")
	}
	s := NewSession(ui, config.Config{}, nil, nil, nil, document.InlineText{}, cleanup)

	s.Close()

	if calls != 1 {
		t.Fatalf("expected one cleanup attempt, got %d", calls)
	}
	if len(ui.errs) != 0 {
		t.Errorf("delete failure must not be reported as an error: %v", ui.errs)
	}
	if len(ui.infos) != 1 || !strings.Contains(ui.infos[0], "uploaded report") {
		t.Errorf("expected an informational note, got %v", ui.infos)
	}

	// Closing again must not retry the delete.
	s.Close()
	if calls != 1 {
		t.Errorf("expected cleanup to run once, got %d", calls)
	}
}

func TestSessionCloseSucceedsQuietly(t *testing.T) {
	ui := &recordingUI{}
	cleanup := func(context.Context) error { return nil }
	s := NewSession(ui, config.Config{}, nil, nil, nil, document.InlineText{}, cleanup)

	s.Close()

	if len(ui.infos) != 0 || len(ui.errs) != 0 {
		t.Errorf("successful cleanup must be silent, got infos=%v errs=%v", ui.infos, ui.errs)
	}
}

func TestSessionCloseWithoutCleanup(t *testing.T) {
	s := NewSession(&recordingUI{}, config.Config{}, nil, nil, nil, document.InlineText{}, nil)
	// Must not panic.
	s.Close()
}

func TestTruncatePreservesMultiByteRunes(t *testing.T) {
	got := truncate("revenue ünïcödé ünïcödé", 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if got != "revenue ün..." {
		t.Errorf("unexpected truncation: %q", got)
	}

	if got := truncate("short", 10); got != "short" {
		t.Errorf("short text must pass through, got %q", got)
	}
}
