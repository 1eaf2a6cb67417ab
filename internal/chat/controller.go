package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ferg-cod3s/opencode-nexus/internal/session"
	"github.com/ferg-cod3s/opencode-nexus/pkg/types"
	"github.com/google/uuid"
)

// ErrInvalidInput is returned when a prompt body lacks the parts field.
var ErrInvalidInput = errors.New("prompt body has no parts")

type Controller struct {
	log      *slog.Logger
	eng      Engine
	sessions session.Store
	delay    time.Duration
}

// NewController wires the engine and store. delay is the pause between
// streamed fragments; zero disables it.
func NewController(log *slog.Logger, eng Engine, store session.Store, delay time.Duration) *Controller {
	return &Controller{log: log, eng: eng, sessions: store, delay: delay}
}

// Prompt runs a single turn: persist the user message, persist the full
// assistant reply, and return a finite channel of reply fragments. The
// channel is fed by one producer goroutine and closed when the reply is
// exhausted or ctx is canceled; it cannot be restarted.
func (c *Controller) Prompt(ctx context.Context, sessionID string, parts []types.Part) (<-chan types.Fragment, error) {
	if parts == nil {
		return nil, ErrInvalidInput
	}
	if _, err := c.sessions.Get(sessionID); err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, p := range parts {
		if p.Type == "text" {
			b.WriteString(p.Text)
		}
	}
	prompt := b.String()

	user := types.Message{
		ID:        uuid.NewString(),
		Role:      types.RoleUser,
		Content:   prompt,
		Timestamp: time.Now(),
	}
	if err := c.sessions.Append(sessionID, user); err != nil {
		return nil, err
	}

	reply, err := c.eng.Generate(ctx, sessionID, prompt)
	if err != nil {
		c.log.Error("engine call", "err", err.Error())
		return nil, err
	}

	// The full exchange is stored before streaming starts, so the history
	// stays consistent even if the caller disconnects mid-stream.
	assistant := types.Message{
		ID:        uuid.NewString(),
		Role:      types.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	}
	if err := c.sessions.Append(sessionID, assistant); err != nil {
		return nil, err
	}

	out := make(chan types.Fragment)
	go c.stream(ctx, assistant.ID, reply, out)
	return out, nil
}

// stream emits one fragment per word of the reply, pausing between
// emissions to simulate generation latency.
func (c *Controller) stream(ctx context.Context, id, reply string, out chan<- types.Fragment) {
	defer close(out)
	words := strings.Fields(reply)
	for i, word := range words {
		frag := types.Fragment{
			ID:        id,
			Content:   word + " ",
			Role:      types.RoleAssistant,
			Timestamp: time.Now(),
			IsChunk:   i < len(words)-1,
		}
		select {
		case out <- frag:
		case <-ctx.Done():
			return
		}
		if c.delay > 0 && i < len(words)-1 {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return
			}
		}
	}
}
