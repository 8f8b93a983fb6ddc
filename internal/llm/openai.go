// Package llm wraps the hosted narrative-generation collaborator. All
// calls degrade gracefully: malformed model output falls back to
// line-splitting, and callers treat failures as "no insight available".
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/quietcheck/mood-server/internal/models"
)

const (
	maxPractices = 3
	maxPatterns  = 3
	maxChatLines = 5

	chatSystemPrompt = "You are an emotional reflective assistant. " +
		"Be warm and concise (3-5 lines). Never diagnose. End with one gentle question."
)

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	client openaigo.Client
	model  string
	apiKey string
}

// NewClient builds a client. An empty baseURL uses the platform
// default; an empty apiKey leaves the client unconfigured (every call
// then fails fast, and health reports it).
func NewClient(apiKey, baseURL, model string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(3),
		option.WithRequestTimeout(60 * time.Second),
		option.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	return &Client{
		client: openaigo.NewClient(opts...),
		model:  model,
		apiKey: apiKey,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) complete(ctx context.Context, temperature float64, maxTokens int64, messages []openaigo.ChatCompletionMessageParamUnion) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("narrative client not configured")
	}

	params := openaigo.ChatCompletionNewParams{
		Model:       openaigo.ChatModel(c.model),
		Temperature: openaigo.Float(temperature),
		Messages:    messages,
	}
	if maxTokens > 0 {
		params.MaxTokens = openaigo.Int(maxTokens)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Practices asks for up to three short micro-practices for a mood.
func (c *Client) Practices(ctx context.Context, mood models.Mood) ([]string, error) {
	prompt := fmt.Sprintf(`You are an empathetic psychology assistant.
The user currently feels: %q.
Suggest 3 very short, practical micro-practices (each 1-2 sentences) to help them right now given their mood.
Format as a simple JSON array of strings. Do not use markdown blocks, just return the raw JSON array of strings.`, mood)

	content, err := c.complete(ctx, 0.7, 300, []openaigo.ChatCompletionMessageParamUnion{
		openaigo.SystemMessage(prompt),
	})
	if err != nil {
		return nil, err
	}
	return ParseStringList(content, maxPractices), nil
}

// WeeklyInsight asks for a short compassionate summary of the digest.
func (c *Client) WeeklyInsight(ctx context.Context, digest string) (string, error) {
	prompt := fmt.Sprintf(`You are an insightful emotional analyst.
Review the following user mood log for the past 7 days.
Provide a compassionate, 2-3 sentence insight summarizing their week and offering a gentle encouraging thought.

LOG:
%s`, digest)

	return c.complete(ctx, 0.7, 0, []openaigo.ChatCompletionMessageParamUnion{
		openaigo.SystemMessage(prompt),
	})
}

// Patterns asks for up to three brief pattern observations.
func (c *Client) Patterns(ctx context.Context, digest string) ([]string, error) {
	prompt := fmt.Sprintf(`You are an analytical psychologist.
Analyze the following user mood history and identify 2-3 key patterns or correlations (e.g., times of day when anxiety spikes, mood drops after specific notes).
Keep each pattern very brief (1 sentence).
Format the response as a simple JSON array of strings. Do not include markdown blocks, just raw JSON array.

LOG:
%s`, digest)

	content, err := c.complete(ctx, 0.7, 300, []openaigo.ChatCompletionMessageParamUnion{
		openaigo.SystemMessage(prompt),
	})
	if err != nil {
		return nil, err
	}
	return ParseStringList(content, maxPatterns), nil
}

// Chat runs one reflective assistant turn over the stored history. The
// reply is trimmed to maxChatLines non-empty lines.
func (c *Client) Chat(ctx context.Context, history []models.ChatMessage) (string, error) {
	messages := make([]openaigo.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openaigo.SystemMessage(chatSystemPrompt))
	for _, m := range history {
		switch m.Role {
		case "assistant":
			messages = append(messages, openaigo.AssistantMessage(m.Content))
		default:
			messages = append(messages, openaigo.UserMessage(m.Content))
		}
	}

	reply, err := c.complete(ctx, 0.6, 150, messages)
	if err != nil {
		return "", err
	}
	return TrimToMaxLines(reply, maxChatLines), nil
}

// FormatEntriesDigest renders entries as one log line each, the shape
// the narrative prompts expect.
func FormatEntriesDigest(entries []models.Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.Date)
		sb.WriteString(" ")
		sb.WriteString(e.Time)
		sb.WriteString(": ")
		sb.WriteString(string(e.Mood))
		if e.Note != "" {
			sb.WriteString(" (")
			sb.WriteString(e.Note)
			sb.WriteString(")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

var listPrefix = regexp.MustCompile(`^[-*0-9.]+\s*`)

// ParseStringList decodes a JSON string array, degrading to
// newline-splitting with bullet prefixes stripped when the content is
// not valid JSON. At most max items are returned.
func ParseStringList(content string, max int) []string {
	var items []string
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		for _, line := range strings.Split(content, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			items = append(items, listPrefix.ReplaceAllString(line, ""))
		}
	}
	if len(items) > max {
		items = items[:max]
	}
	return items
}

// TrimToMaxLines keeps at most max non-empty lines of text.
func TrimToMaxLines(text string, max int) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
		if len(kept) == max {
			break
		}
	}
	return strings.Join(kept, "\n")
}
