package summary

import (
	"context"
	"fmt"

	"visitscribe/internal/llm"
	"visitscribe/internal/visit"
)

// Service turns a validated visit record into a stream of summary fragments.
type Service struct {
	llm llm.Streamer
}

func NewService(streamer llm.Streamer) *Service {
	return &Service{llm: streamer}
}

// Generate builds the system/user prompt pair for rec and opens the
// completion stream. An error means no fragment was produced; once the
// channel is returned it delivers fragments in provider order until closed.
func (s *Service) Generate(ctx context.Context, rec visit.Record) (<-chan string, error) {
	systemPrompt := BuildSystemPrompt(rec.Specialty, rec.Urgency)
	userPrompt := BuildUserPrompt(rec)

	fragments, err := s.llm.StreamCompletion(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("open completion stream: %w", err)
	}
	return fragments, nil
}
