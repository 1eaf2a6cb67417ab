package check

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ferg-cod3s/opencode-nexus/pkg/types"
)

// Runner executes the integration check suite against a live server and
// prints one pass/fail line per check. Later checks reuse state from
// earlier ones (the created session id, the streamed fragments).
type Runner struct {
	client *Client
	out    io.Writer

	sessionID string
	sentText  string
	fragments []types.Fragment
}

func NewRunner(client *Client, out io.Writer) *Runner {
	return &Runner{client: client, out: out}
}

// Run executes every check in order and reports the overall verdict.
// Checks keep running after a failure so one broken endpoint does not hide
// the state of the rest.
func (r *Runner) Run(ctx context.Context) bool {
	checks := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"server info", r.checkServerInfo},
		{"session creation", r.checkSessionCreation},
		{"prompt streaming", r.checkPromptStreaming},
		{"message history", r.checkMessageHistory},
		{"session listing", r.checkSessionListing},
	}

	passed := 0
	for _, c := range checks {
		if err := c.fn(ctx); err != nil {
			fmt.Fprintf(r.out, "FAIL  %s: %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(r.out, "PASS  %s\n", c.name)
		passed++
	}

	fmt.Fprintf(r.out, "%d/%d checks passed\n", passed, len(checks))
	return passed == len(checks)
}

func (r *Runner) checkServerInfo(ctx context.Context) error {
	info, err := r.client.AppInfo(ctx)
	if err != nil {
		return err
	}
	if info.Name == "" || info.Status == "" {
		return fmt.Errorf("incomplete server info: %+v", info)
	}
	return nil
}

func (r *Runner) checkSessionCreation(ctx context.Context) error {
	const title = "Connectivity Check"
	sess, err := r.client.CreateSession(ctx, title)
	if err != nil {
		return err
	}
	if sess.ID == "" {
		return fmt.Errorf("session created without an id")
	}
	if sess.Title != title {
		return fmt.Errorf("title not round-tripped: got %q", sess.Title)
	}
	r.sessionID = sess.ID
	return nil
}

func (r *Runner) checkPromptStreaming(ctx context.Context) error {
	if r.sessionID == "" {
		return fmt.Errorf("no session available")
	}
	r.sentText = "Hello from chatcheck"
	frags, err := r.client.SendPrompt(ctx, r.sessionID, r.sentText)
	if err != nil {
		return err
	}
	if len(frags) == 0 {
		return fmt.Errorf("stream produced no fragments")
	}
	for i, f := range frags {
		if f.ID != frags[0].ID {
			return fmt.Errorf("fragment %d has id %s, want %s", i, f.ID, frags[0].ID)
		}
		if f.Role != types.RoleAssistant {
			return fmt.Errorf("fragment %d has role %q", i, f.Role)
		}
		wantChunk := i < len(frags)-1
		if f.IsChunk != wantChunk {
			return fmt.Errorf("fragment %d is_chunk=%v, want %v", i, f.IsChunk, wantChunk)
		}
	}
	r.fragments = frags
	return nil
}

func (r *Runner) checkMessageHistory(ctx context.Context) error {
	if len(r.fragments) == 0 {
		return fmt.Errorf("no streamed reply to compare against")
	}
	msgs, err := r.client.Messages(ctx, r.sessionID)
	if err != nil {
		return err
	}
	if len(msgs) < 2 {
		return fmt.Errorf("expected user and assistant turns, got %d messages", len(msgs))
	}

	user, assistant := msgs[len(msgs)-2], msgs[len(msgs)-1]
	if user.Role != types.RoleUser || assistant.Role != types.RoleAssistant {
		return fmt.Errorf("unexpected turn order: %s then %s", user.Role, assistant.Role)
	}
	if user.Content != r.sentText {
		return fmt.Errorf("user message not stored verbatim: got %q", user.Content)
	}
	if assistant.Timestamp.Before(user.Timestamp) {
		return fmt.Errorf("assistant timestamp precedes user timestamp")
	}

	var b strings.Builder
	for _, f := range r.fragments {
		b.WriteString(f.Content)
	}
	if got := strings.TrimRight(b.String(), " "); got != assistant.Content {
		return fmt.Errorf("streamed reply %q does not match stored reply %q", got, assistant.Content)
	}
	return nil
}

func (r *Runner) checkSessionListing(ctx context.Context) error {
	sessions, err := r.client.Sessions(ctx)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if s.ID == r.sessionID {
			return nil
		}
	}
	return fmt.Errorf("session %s missing from listing", r.sessionID)
}
