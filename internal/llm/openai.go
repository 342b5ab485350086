package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"visitscribe/internal/config"
)

// OpenAIStreamer implements Streamer on top of the OpenAI chat completion
// API (or any compatible endpoint via OPENAI_BASE_URL).
type OpenAIStreamer struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

func NewOpenAIStreamer(cfg config.OpenAIConfig, logger *slog.Logger) *OpenAIStreamer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIStreamer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// StreamCompletion issues a single streaming chat completion with exactly two
// messages, system then user. Fragments are forwarded in the order received;
// delta-less events (role updates, metadata) are skipped. A mid-stream
// provider failure closes the channel after the fragments already delivered —
// sent bytes cannot be retracted, so the failure is only logged here and the
// relay terminates the response with its usual sentinel.
func (s *OpenAIStreamer) StreamCompletion(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, error) {
	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:  s.model,
		Stream: true,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create completion stream: %w", err)
	}

	fragments := make(chan string)
	go func() {
		defer close(fragments)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if ctx.Err() == nil && s.logger != nil {
					s.logger.Warn("completion stream interrupted",
						slog.String("error", err.Error()))
				}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			piece := resp.Choices[0].Delta.Content
			if piece == "" {
				continue
			}
			select {
			case fragments <- piece:
			case <-ctx.Done():
				return
			}
		}
	}()

	return fragments, nil
}
