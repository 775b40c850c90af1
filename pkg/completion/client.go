// Package completion wraps an external text-completion service behind a
// minimal role-tagged prompt interface. The rest of the system treats the
// service as an opaque function from prompt to text.
package completion

import (
	"context"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// Client performs a single text completion.
type Client interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request carries a role-tagged prompt plus model settings.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	Temperature *float64
	MaxTokens   int64
}

// Message is one conversational turn.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Response is the completed text plus token accounting.
type Response struct {
	Text  string
	Usage TokenUsage
}

// TokenUsage tracks token consumption for a completion.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// sdkClient implements Client using the official anthropic-sdk-go.
type sdkClient struct {
	client       sdk.Client
	defaultModel string
}

// NewClient creates a completion client backed by the Anthropic API.
func NewClient(apiKey, defaultModel string) Client {
	return &sdkClient{
		client:       sdk.NewClient(option.WithAPIKey(apiKey)),
		defaultModel: defaultModel,
	}
}

func (c *sdkClient) Complete(ctx context.Context, req Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := sdk.MessageNewParams{
		Model:     sdk.Model(model),
		MaxTokens: maxTokens,
		Messages:  toSDKMessages(req.Messages),
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "completion: create message")
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	return &Response{
		Text: text,
		Usage: TokenUsage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}, nil
}

func toSDKMessages(msgs []Message) []sdk.MessageParam {
	out := make([]sdk.MessageParam, len(msgs))
	for i, m := range msgs {
		block := sdk.NewTextBlock(m.Content)
		switch m.Role {
		case "assistant":
			out[i] = sdk.NewAssistantMessage(block)
		default:
			out[i] = sdk.NewUserMessage(block)
		}
	}
	return out
}
