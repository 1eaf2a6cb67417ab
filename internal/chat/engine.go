package chat

import (
	"context"
	"fmt"
)

type Engine interface {
	Generate(ctx context.Context, sessionID, prompt string) (string, error)
}

// MockEngine produces the canned reply the client test-suite expects. It
// echoes the prompt and names the target session.
type MockEngine struct{}

func NewMockEngine() *MockEngine { return &MockEngine{} }

func (e *MockEngine) Generate(ctx context.Context, sessionID, prompt string) (string, error) {
	reply := fmt.Sprintf(
		"I received your message: '%s'. This is a mock AI response for testing purposes. The message was sent to session %s.",
		prompt, sessionID,
	)
	return reply, nil
}
