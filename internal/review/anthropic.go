// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	anthropicAPIVersion = "2023-06-01"
	defaultAnthropicURL = "https://api.anthropic.com"

	reviewSystemPrompt = "You are reviewing a stored document for a researcher. " +
		"Use the available tools to read the document and look up related work, " +
		"then answer the question directly. Keep the answer grounded in what the " +
		"tools returned."
)

// AnthropicGenerator implements Generator against the Anthropic
// Messages API, mapping the session transcript to tool_use and
// tool_result content blocks.
type AnthropicGenerator struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Model   string

	// MaxTokens caps each generation step.
	MaxTokens int
}

// NewAnthropicGenerator builds a generator from config, applying
// defaults for the endpoint and token cap.
func NewAnthropicGenerator(cfg types.ReviewConfig) *AnthropicGenerator {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAnthropicURL
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = types.DefaultReviewMaxTokens
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultReviewTimeout
	}
	return &AnthropicGenerator{
		Client:    &http.Client{Timeout: timeout},
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    cfg.APIKey,
		Model:     cfg.Model,
		MaxTokens: maxTokens,
	}
}

type anthropicTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`

	// tool_use fields.
	ID    string         `json:"id,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`

	// tool_result fields.
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Tools     []anthropicTool    `json:"tools,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Decide issues one Messages call and maps the first tool_use block to
// a ToolCall, or the concatenated text blocks to a final answer.
func (g *AnthropicGenerator) Decide(ctx context.Context, s *Session, tools []ToolSpec) (Decision, error) {
	req := anthropicRequest{
		Model:     g.Model,
		MaxTokens: g.MaxTokens,
		System:    reviewSystemPrompt,
		Tools:     make([]anthropicTool, 0, len(tools)),
		Messages:  buildMessages(s),
	}
	for _, t := range tools {
		req.Tools = append(req.Tools, anthropicTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.Parameters,
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Decision{}, fmt.Errorf("encoding messages request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return Decision{}, fmt.Errorf("building messages request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", g.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)

	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return Decision{}, fmt.Errorf("calling messages API: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Decision{}, fmt.Errorf("reading messages response: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Decision{}, fmt.Errorf("decoding messages response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return Decision{}, fmt.Errorf("messages API error (%s): %s", parsed.Error.Type, parsed.Error.Message)
		}
		return Decision{}, fmt.Errorf("messages API returned HTTP %d", resp.StatusCode)
	}

	var answer strings.Builder
	for _, block := range parsed.Content {
		switch block.Type {
		case "tool_use":
			args := block.Input
			if args == nil {
				args = map[string]any{}
			}
			return Decision{Call: &ToolCall{Name: block.Name, Arguments: args}}, nil
		case "text":
			answer.WriteString(block.Text)
		}
	}
	return Decision{Answer: strings.TrimSpace(answer.String())}, nil
}

// buildMessages renders the session as an alternating message list:
// the opening user message, then one assistant tool_use plus one user
// tool_result pair per executed turn. Tool use IDs are synthesized from
// the turn index since the loop does not persist the API's own IDs.
func buildMessages(s *Session) []anthropicMessage {
	opening := fmt.Sprintf("Document under review: %q\n\nQuestion: %s", s.DocumentName, s.Question)
	messages := []anthropicMessage{{
		Role:    "user",
		Content: []anthropicContent{{Type: "text", Text: opening}},
	}}

	for i, turn := range s.Transcript {
		id := fmt.Sprintf("call_%d", i+1)
		messages = append(messages,
			anthropicMessage{
				Role: "assistant",
				Content: []anthropicContent{{
					Type:  "tool_use",
					ID:    id,
					Name:  turn.ToolName,
					Input: turn.Arguments,
				}},
			},
			anthropicMessage{
				Role: "user",
				Content: []anthropicContent{{
					Type:      "tool_result",
					ToolUseID: id,
					Content:   turn.Result,
				}},
			},
		)
	}
	return messages
}
