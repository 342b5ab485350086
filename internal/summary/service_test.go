package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"visitscribe/internal/visit"
)

type stubStreamer struct {
	fragments    []string
	err          error
	systemPrompt string
	userPrompt   string
}

func (s *stubStreamer) StreamCompletion(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, error) {
	s.systemPrompt = systemPrompt
	s.userPrompt = userPrompt
	if s.err != nil {
		return nil, s.err
	}
	ch := make(chan string, len(s.fragments))
	for _, f := range s.fragments {
		ch <- f
	}
	close(ch)
	return ch, nil
}

func TestGeneratePassesPromptPair(t *testing.T) {
	streamer := &stubStreamer{fragments: []string{"a", "b"}}
	svc := NewService(streamer)

	rec := visit.Record{PatientName: "Jane", DateOfVisit: "2025-01-01", Notes: "cough", Specialty: "Cardiology"}
	fragments, err := svc.Generate(context.Background(), rec)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var got []string
	for f := range fragments {
		got = append(got, f)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected fragments: %v", got)
	}

	if !strings.Contains(streamer.systemPrompt, "cardiovascular risk") {
		t.Fatalf("system prompt missing specialty guidance")
	}
	if !strings.Contains(streamer.userPrompt, "Patient Name: Jane") {
		t.Fatalf("user prompt missing visit fields")
	}
}

func TestGeneratePropagatesOpenError(t *testing.T) {
	streamErr := errors.New("provider down")
	svc := NewService(&stubStreamer{err: streamErr})

	rec := visit.Record{PatientName: "Jane", DateOfVisit: "2025-01-01", Notes: "cough"}
	if _, err := svc.Generate(context.Background(), rec); !errors.Is(err, streamErr) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}
