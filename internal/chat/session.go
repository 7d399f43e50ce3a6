package chat

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/recrsn/finsight/internal/agent"
	"github.com/recrsn/finsight/internal/config"
	"github.com/recrsn/finsight/internal/document"
	"github.com/recrsn/finsight/internal/tools"
)

const cleanupTimeout = 15 * time.Second

// UI is the terminal surface the chat package depends on. ui.Terminal is the
// production implementation.
type UI interface {
	AskInput(prompt string) (string, error)
	PrintAgentLabel()
	PrintAnswerChunk(chunk string)
	PrintAnswerDone()
	PrintAgentMessage(message string)
	PrintError(message string)
	PrintSuccess(message string)
	PrintInfo(message string)
	ClearScreen()
}

// Session drives the conversational loop over one loaded report. Queries are
// handled strictly sequentially: one exchange fully completes, including all
// its reasoning iterations and tool calls, before the next is accepted.
type Session struct {
	ui       UI
	config   config.Config
	registry *tools.Registry
	loop     *agent.Loop
	memory   *agent.Memory
	doc      document.Context
	// cleanup releases the remote upload at session end, best effort.
	cleanup func(ctx context.Context) error
}

// NewSession creates a chat session over the given document
func NewSession(term UI, cfg config.Config, registry *tools.Registry, loop *agent.Loop, memory *agent.Memory, doc document.Context, cleanup func(ctx context.Context) error) *Session {
	return &Session{
		ui:       term,
		config:   cfg,
		registry: registry,
		loop:     loop,
		memory:   memory,
		doc:      doc,
		cleanup:  cleanup,
	}
}

// Start runs the session until the user exits
func (s *Session) Start() error {
	defer s.Close()

	s.ui.PrintSuccess(fmt.Sprintf("Ready to discuss %q.", s.doc.DisplayName()))
	s.ui.PrintInfo("Ask questions about the loaded financial report. Type /help for commands, /exit to quit.")

	for {
		userInput, err := s.ui.AskInput("> ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if userInput == "" {
			continue
		}

		if strings.HasPrefix(userInput, "/") {
			if err := s.handleCommand(userInput); err != nil {
				if err.Error() == "exit" {
					return nil
				}
				s.ui.PrintError(fmt.Sprintf("Error executing command: %v", err))
			}
			continue
		}

		s.runQuery(userInput)
	}
}

// handleCommand handles chat commands
func (s *Session) handleCommand(cmd string) error {
	parts := strings.SplitN(cmd, " ", 2)
	command := parts[0]

	switch command {
	case "/help":
		s.printHelp()
		return nil
	case "/exit", "/quit":
		return fmt.Errorf("exit")
	case "/clear":
		s.ui.ClearScreen()
		return nil
	case "/tools":
		fmt.Println("Available tools:")
		for _, tool := range s.registry.All() {
			fmt.Printf("- %s: %s\n", tool.Name, tool.Description)
		}
		return nil
	case "/memory":
		s.printMemory()
		return nil
	case "/version":
		fmt.Println("Finsight v0.1.0")
		return nil
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runQuery handles one exchange. Failures are reported and the session
// continues; nothing here terminates the loop.
func (s *Session) runQuery(query string) {
	streamed := false
	result, err := s.loop.Run(context.Background(), query, func(chunk string) {
		if !streamed {
			s.ui.PrintAgentLabel()
			streamed = true
		}
		s.ui.PrintAnswerChunk(chunk)
	})
	if streamed {
		s.ui.PrintAnswerDone()
	}
	if err != nil {
		s.ui.PrintError(fmt.Sprintf("An unexpected error occurred: %v", err))
		s.ui.PrintInfo("You can keep asking questions; if this persists, check your connection and API key.")
		return
	}

	// Degraded outcomes never stream; render the best-effort text as a
	// complete markdown message instead.
	if !streamed {
		s.ui.PrintAgentMessage(result.Answer)
	}

	switch result.Outcome {
	case agent.OutcomeIterationLimit:
		s.ui.PrintInfo("The reasoning budget ran out before a final answer; the above is a best-effort result.")
	case agent.OutcomeParseError:
		s.ui.PrintInfo("The model did not follow the expected reasoning format; the above is a best-effort result.")
	}
}

func (s *Session) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /help     Show this help")
	fmt.Println("  /tools    List the analysis tools the agent can use")
	fmt.Println("  /memory   Show how much conversation history is retained")
	fmt.Println("  /clear    Clear the screen")
	fmt.Println("  /exit     End the session")
}

func (s *Session) printMemory() {
	window := s.config.Agent.MemoryWindow
	fmt.Printf("Conversation memory holds %d of at most %d exchanges.\n", s.memory.Len(), window)
	for _, turn := range s.memory.Turns() {
		label := "You"
		if turn.Role == agent.RoleAgent {
			label = "Agent"
		}
		fmt.Printf("  %s: %s\n", label, truncate(turn.Content, 80))
	}
}

// Close releases the remote upload, if any. Deletion failure is logged, not
// fatal; the session still reports a clean exit.
func (s *Session) Close() {
	if s.cleanup == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	if err := s.cleanup(ctx); err != nil {
		s.ui.PrintInfo(fmt.Sprintf("Could not delete the uploaded report: %v. It may be cleaned up by the provider later.", err))
	}
	s.cleanup = nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
