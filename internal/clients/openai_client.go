package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openAIRequestTimeout = 30 * time.Second

// OpenAIClient sends single-turn prompts to a chat model.
type OpenAIClient struct {
	Client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("[OpenAIClient] missing API key")
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
		option.WithMaxRetries(0),
	}, opts...)
	client := openai.NewClient(opts...)
	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIClient{Client: client, model: model}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	backoff := INITIAL_BACKOFF

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		completion, err := c.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			}),
			Model:       openai.F(openai.ChatModel(c.model)),
			Temperature: openai.Float(0),
		})
		if err == nil && len(completion.Choices) > 0 {
			return strings.TrimSpace(completion.Choices[0].Message.Content), nil
		}

		lastErr = err
		if lastErr == nil {
			lastErr = fmt.Errorf("empty completion")
		}
		slog.Warn("[OpenAIClient] Completion failed, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", lastErr.Error()))
		if attempt == MAX_RETRIES {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, MAX_BACKOFF)
	}

	return "", fmt.Errorf("[OpenAIClient] completion failed after %d attempts: %w", MAX_RETRIES, lastErr)
}
