package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 256
)

// ErrNoCommand is returned when the message does not describe any farm record.
var ErrNoCommand = errors.New("no command in message")

// Client turns free-form worker messages into slash commands.
type Client interface {
	TranslateToCommand(ctx context.Context, input string) (string, error)
}

type anthropicClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &anthropicClient{httpClient: client, url: apiURL}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const systemPrompt = `You translate messages from fish farm workers into exactly one command.
Workers write in French or English and may use slang.

Commands:
/pond <id>
/stock <count> [note]
/mortality <count> [reason]
/adjust <signed count> [note]
/feed <kg> [feed type]
/harvest <kg> <count> <price per kg> [partial|total]
/expense <amount> <feed|seed|medicine|electricity|labor|equipment|other> [note]
/sample <fish per kg> [note]
/purchase <feed type> <kg> <unit price>
/status
/cycles
/appetite
/target

Rules:
- Answer with the command only, on one line, without explanation.
- Use a dot as decimal separator.
- If the message describes no record or question above, answer NONE.`

// TranslateToCommand asks the model for the slash command matching input.
func (c *anthropicClient) TranslateToCommand(ctx context.Context, input string) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  []message{{Role: "user", Content: input}},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", errors.New("empty response from ai")
	}

	return parseCommand(respBody.Content[0].Text)
}

// parseCommand keeps the first slash line of the model output.
func parseCommand(text string) (string, error) {
	text = strings.Trim(strings.TrimSpace(text), "`")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "/") {
			return line, nil
		}
	}
	return "", ErrNoCommand
}
