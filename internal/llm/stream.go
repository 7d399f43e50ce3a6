package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// chatCompletionChunk is one server-sent event of a streaming completion
type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// StreamChatCompletion creates a streaming chat completion. onDelta is invoked
// for every content fragment as it arrives; the concatenation of all fragments
// is returned as the complete response text. onDelta may be nil.
func (c *Client) StreamChatCompletion(ctx context.Context, req ChatCompletionRequest, onDelta func(string)) (string, error) {
	req.Stream = true

	resp, err := c.post(ctx, req)
	if err != nil {
		if c.logger != nil {
			c.logger.LogInteraction(req, nil, err)
		}
		return "", err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := decodeAPIError(resp.StatusCode, body)
		if c.logger != nil {
			c.logger.LogInteraction(req, nil, err)
		}
		return "", err
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "[DONE]" {
			break
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return full.String(), fmt.Errorf("unmarshaling stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return full.String(), fmt.Errorf("stream cancelled: %w", ctx.Err())
		}
		return full.String(), fmt.Errorf("reading stream: %w", err)
	}

	if c.logger != nil {
		c.logger.LogInteraction(req, full.String(), nil)
	}

	return full.String(), nil
}
