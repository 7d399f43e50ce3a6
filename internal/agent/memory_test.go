package agent

import (
	"fmt"
	"strings"
	"testing"
)

func TestMemoryKeepsMostRecentExchanges(t *testing.T) {
	m := NewMemory(2)

	m.AddExchange("q1", "a1")
	m.AddExchange("q2", "a2")
	m.AddExchange("q3", "a3")

	if m.Len() != 2 {
		t.Fatalf("expected 2 exchanges, got %d", m.Len())
	}

	turns := m.Turns()
	want := []Turn{
		{Role: RoleUser, Content: "q2"},
		{Role: RoleAgent, Content: "a2"},
		{Role: RoleUser, Content: "q3"},
		{Role: RoleAgent, Content: "a3"},
	}
	if len(turns) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(turns))
	}
	for i, turn := range turns {
		if turn != want[i] {
			t.Errorf("turn %d: expected %+v, got %+v", i, want[i], turn)
		}
	}
}

func TestMemoryNeverExceedsWindow(t *testing.T) {
	const window = 5
	m := NewMemory(window)

	for i := 0; i < window*3; i++ {
		m.AddExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		if m.Len() > window {
			t.Fatalf("after %d exchanges memory holds %d, exceeds window %d", i+1, m.Len(), window)
		}
	}

	// After window+1 exchanges the oldest must be gone and the most recent
	// window present in order.
	rendered := m.Render()
	if strings.Contains(rendered, "q9\n") || strings.Contains(rendered, "Human: q9") {
		t.Error("expected evicted exchange q9 to be absent")
	}
	if !strings.Contains(rendered, "q14") {
		t.Error("expected most recent exchange q14 to be present")
	}
}

func TestMemoryRender(t *testing.T) {
	m := NewMemory(3)

	if m.Render() != "(no previous conversation)" {
		t.Errorf("unexpected empty render: %q", m.Render())
	}

	m.AddExchange("what is revenue?", "revenue is $100")
	rendered := m.Render()
	if !strings.Contains(rendered, "Human: what is revenue?") {
		t.Errorf("missing user turn in %q", rendered)
	}
	if !strings.Contains(rendered, "AI: revenue is $100") {
		t.Errorf("missing agent turn in %q", rendered)
	}
}

func TestMemoryTurnsReturnsCopy(t *testing.T) {
	m := NewMemory(2)
	m.AddExchange("q", "a")

	turns := m.Turns()
	turns[0].Content = "mutated"

	if m.Turns()[0].Content != "q" {
		t.Error("mutating the returned slice changed internal state")
	}
}
