package agent

import "strings"

// Turn roles
const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Turn is one side of a completed exchange.
type Turn struct {
	Role    string
	Content string
}

// Memory is a bounded, ordered log of completed exchanges injected into every
// reasoning prompt. It keeps the most recent window exchanges and evicts the
// oldest first. Only the dispatch loop mutates it, once per completed
// exchange; intermediate tool calls never touch it.
type Memory struct {
	window int
	turns  []Turn
}

// NewMemory creates a conversation memory keeping at most window exchanges.
func NewMemory(window int) *Memory {
	if window < 1 {
		window = 1
	}
	return &Memory{window: window}
}

// AddExchange appends one completed user/agent exchange, evicting the oldest
// exchange if the window is full.
func (m *Memory) AddExchange(query, answer string) {
	m.turns = append(m.turns,
		Turn{Role: RoleUser, Content: query},
		Turn{Role: RoleAgent, Content: answer},
	)
	if excess := len(m.turns)/2 - m.window; excess > 0 {
		m.turns = m.turns[excess*2:]
	}
}

// Turns returns a copy of the recorded turns, oldest first.
func (m *Memory) Turns() []Turn {
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of recorded exchanges.
func (m *Memory) Len() int {
	return len(m.turns) / 2
}

// Render serializes the memory for the reasoning prompt's chat-history slot.
func (m *Memory) Render() string {
	if len(m.turns) == 0 {
		return "(no previous conversation)"
	}
	var b strings.Builder
	for i, turn := range m.turns {
		if i > 0 {
			b.WriteString("\n")
		}
		switch turn.Role {
		case RoleUser:
			b.WriteString("Human: ")
		default:
			b.WriteString("AI: ")
		}
		b.WriteString(turn.Content)
	}
	return b.String()
}
