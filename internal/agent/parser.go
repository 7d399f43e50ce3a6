package agent

import (
	"fmt"
	"strings"
)

// Protocol markers the model output is parsed against. The grammar is strictly
// textual; no structured output is used.
const (
	thoughtMarker     = "Thought:"
	actionMarker      = "Action:"
	actionInputMarker = "Action Input:"
	finalAnswerMarker = "Final Answer:"
)

// step is the parsed form of one reasoning output: either a tool dispatch
// (action + actionInput) or a final answer.
type step struct {
	thought     string
	action      string
	actionInput string
	finalAnswer string
	isFinal     bool
}

// parseStep parses raw model output against the protocol grammar. A final
// answer takes precedence over an action when both appear; everything after
// the final-answer marker is the answer text.
func parseStep(raw string) (step, error) {
	var st step

	if idx := strings.Index(raw, finalAnswerMarker); idx >= 0 {
		st.isFinal = true
		st.finalAnswer = strings.TrimSpace(raw[idx+len(finalAnswerMarker):])
		st.thought = firstMarkedLine(raw[:idx], thoughtMarker)
		return st, nil
	}

	st.thought = firstMarkedLine(raw, thoughtMarker)
	st.action = firstMarkedLine(raw, actionMarker)
	st.actionInput = firstMarkedLine(raw, actionInputMarker)

	if st.action == "" {
		return st, fmt.Errorf("output has neither an Action nor a Final Answer")
	}
	if !hasMarker(raw, actionInputMarker) {
		return st, fmt.Errorf("Action %q has no Action Input line", st.action)
	}
	return st, nil
}

// firstMarkedLine returns the trimmed remainder of the first line starting
// with marker, or "" when absent.
func firstMarkedLine(text, marker string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
		}
	}
	return ""
}

func hasMarker(text, marker string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), marker) {
			return true
		}
	}
	return false
}
