package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/recrsn/finsight/internal/llm"
	"github.com/recrsn/finsight/internal/tools"
)

const defaultMaxIterations = 5

// correctiveObservation is injected into the scratchpad when an output fails
// to parse, so the model can self-correct on the next iteration instead of
// looping silently.
const correctiveObservation = "Check your output and make sure it conforms to the expected format. " +
	"Ensure the Action is EXACTLY one of the available tool names."

// fallbackAnswer is surfaced when the budget runs out before any usable text
// was produced.
const fallbackAnswer = "I could not work out an answer to that within my reasoning budget. " +
	"Try rephrasing the question or asking about one aspect of the report at a time."

// Outcome tags the result of one reasoning loop invocation.
type Outcome int

const (
	// OutcomeFinalAnswer means the model emitted a final answer.
	OutcomeFinalAnswer Outcome = iota
	// OutcomeIterationLimit means the budget ran out; Answer carries the
	// best-effort partial text. Degraded completion, not a failure.
	OutcomeIterationLimit
	// OutcomeParseError means no iteration ever produced a parseable step;
	// Raw carries the last raw model output.
	OutcomeParseError
)

// ScratchpadEntry records one reasoning step for the current query. The
// scratchpad is local to a single Run call and is never persisted into
// conversation memory.
type ScratchpadEntry struct {
	Thought     string
	Action      string
	ActionInput string
	Observation string
}

// Result is produced exactly once per user query.
type Result struct {
	Outcome Outcome
	Answer  string
	Raw     string
	Steps   []ScratchpadEntry
}

// Model is the language-model surface the loop depends on.
type Model interface {
	StreamChatCompletion(ctx context.Context, req llm.ChatCompletionRequest, onDelta func(string)) (string, error)
}

// Config holds the loop's model and budget settings
type Config struct {
	Model         string
	Temperature   float64
	MaxIterations int
}

// Loop converts one user query into one final answer, using at most
// MaxIterations reasoning steps. States: Reasoning -> ToolDispatch ->
// Observing -> Reasoning | Terminal, with explicit iteration counting.
type Loop struct {
	model    Model
	registry *tools.Registry
	memory   *Memory
	config   Config
	debugf   func(format string, args ...any)
}

// NewLoop creates a dispatch loop. debugf receives diagnostic trace lines
// (thoughts, actions, parse failures) and may be nil.
func NewLoop(model Model, registry *tools.Registry, memory *Memory, cfg Config, debugf func(string, ...any)) *Loop {
	if cfg.MaxIterations < 1 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if debugf == nil {
		debugf = func(string, ...any) {}
	}
	return &Loop{
		model:    model,
		registry: registry,
		memory:   memory,
		config:   cfg,
		debugf:   debugf,
	}
}

// Run executes the reasoning loop for one user query. onAnswerChunk, when
// non-nil, receives final-answer text incrementally as it streams in;
// intermediate thought/action/observation text is never surfaced through it.
//
// An error return means the model call itself failed (transport/API); the
// caller reports it and the session continues. Every non-error return appends
// exactly one exchange to conversation memory.
func (l *Loop) Run(ctx context.Context, query string, onAnswerChunk func(string)) (Result, error) {
	var pad []ScratchpadEntry
	var lastRaw string
	parsedAny := false

	for iteration := 1; iteration <= l.config.MaxIterations; iteration++ {
		prompt, err := renderReasoningPrompt(promptData{
			ToolDescriptions: l.registry.Describe(),
			ToolNames:        strings.Join(l.registry.Names(), ", "),
			ChatHistory:      l.memory.Render(),
			Input:            query,
			Scratchpad:       renderScratchpad(pad),
		})
		if err != nil {
			return Result{}, err
		}

		stream := newAnswerStream(onAnswerChunk)
		raw, err := l.model.StreamChatCompletion(ctx, llm.ChatCompletionRequest{
			Model:       l.config.Model,
			Temperature: l.config.Temperature,
			Messages:    []llm.Message{{Role: "user", Content: prompt}},
		}, stream.feed)
		if err != nil {
			return Result{}, fmt.Errorf("reasoning call: %w", err)
		}
		lastRaw = raw

		st, parseErr := parseStep(raw)
		if parseErr == nil && !st.isFinal {
			if _, ok := l.registry.Get(st.action); !ok {
				parseErr = fmt.Errorf("unknown tool %q", st.action)
			}
		}
		if parseErr != nil {
			// Recovered locally: the failure consumes this iteration and the
			// corrective instruction rides along in the scratchpad.
			l.debugf("iteration %d: parse failure: %v", iteration, parseErr)
			pad = append(pad, ScratchpadEntry{
				Thought:     st.thought,
				Observation: correctiveObservation,
			})
			continue
		}
		parsedAny = true

		if st.isFinal {
			l.debugf("iteration %d: final answer", iteration)
			l.memory.AddExchange(query, st.finalAnswer)
			return Result{Outcome: OutcomeFinalAnswer, Answer: st.finalAnswer, Steps: pad}, nil
		}

		l.debugf("iteration %d: dispatching %s(%q)", iteration, st.action, st.actionInput)
		tool, _ := l.registry.Get(st.action)
		observation := tool.Run(ctx, st.actionInput)
		l.debugf("iteration %d: observation: %s", iteration, observation)

		pad = append(pad, ScratchpadEntry{
			Thought:     st.thought,
			Action:      st.action,
			ActionInput: st.actionInput,
			Observation: observation,
		})
	}

	answer := bestEffortAnswer(pad)
	l.memory.AddExchange(query, answer)

	if !parsedAny {
		l.debugf("budget exhausted with no parseable step")
		return Result{Outcome: OutcomeParseError, Answer: answer, Raw: lastRaw, Steps: pad}, nil
	}
	l.debugf("budget exhausted after %d iterations", l.config.MaxIterations)
	return Result{Outcome: OutcomeIterationLimit, Answer: answer, Steps: pad}, nil
}

// bestEffortAnswer picks the most recent usable observation from the
// scratchpad so a budget overrun still yields a degraded answer.
func bestEffortAnswer(pad []ScratchpadEntry) string {
	for i := len(pad) - 1; i >= 0; i-- {
		obs := strings.TrimSpace(pad[i].Observation)
		if obs != "" && obs != correctiveObservation {
			return obs
		}
	}
	return fallbackAnswer
}
