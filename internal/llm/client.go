package llm

import "context"

// Streamer opens one streaming chat completion and delivers the incremental
// text deltas in provider order. Empty deltas are dropped, never forwarded.
// The channel is closed when the provider signals completion, fails
// mid-stream, or ctx is cancelled; an error return means the stream could
// not be opened and no fragment was produced.
type Streamer interface {
	StreamCompletion(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, error)
}
