package agent

import "strings"

// answerStream filters a streamed reasoning output so that only the text
// after the final-answer marker reaches the caller. Thought and action text
// stays diagnostic. Feeding accumulates the full raw output, so the marker is
// found even when it is split across deltas.
type answerStream struct {
	emit    func(string)
	buf     strings.Builder
	started bool
	leading bool // still trimming whitespace right after the marker
	pos     int
}

func newAnswerStream(emit func(string)) *answerStream {
	return &answerStream{emit: emit, leading: true}
}

func (s *answerStream) feed(delta string) {
	s.buf.WriteString(delta)
	if s.emit == nil {
		return
	}

	text := s.buf.String()
	if !s.started {
		idx := strings.Index(text, finalAnswerMarker)
		if idx < 0 {
			return
		}
		s.started = true
		s.pos = idx + len(finalAnswerMarker)
	}

	if s.pos >= len(text) {
		return
	}
	chunk := text[s.pos:]
	s.pos = len(text)
	if s.leading {
		trimmed := strings.TrimLeft(chunk, " \t\n")
		if trimmed == "" {
			// Whitespace only so far; keep trimming on the next delta.
			return
		}
		s.leading = false
		chunk = trimmed
	}
	s.emit(chunk)
}
