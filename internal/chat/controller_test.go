package chat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ferg-cod3s/opencode-nexus/internal/session"
	"github.com/ferg-cod3s/opencode-nexus/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testController(t *testing.T) (*Controller, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := NewController(log, NewMockEngine(), store, 0)
	return ctrl, store
}

func drain(frags <-chan types.Fragment) []types.Fragment {
	var out []types.Fragment
	for f := range frags {
		out = append(out, f)
	}
	return out
}

func TestMockEngineReply(t *testing.T) {
	eng := NewMockEngine()
	reply, err := eng.Generate(context.Background(), "sess-1", "hi")
	require.NoError(t, err)
	assert.Equal(t,
		"I received your message: 'hi'. This is a mock AI response for testing purposes. The message was sent to session sess-1.",
		reply)
}

func TestPromptStoresBothTurns(t *testing.T) {
	ctrl, store := testController(t)
	sess := store.Create("turns")

	frags, err := ctrl.Prompt(context.Background(), sess.ID, []types.Part{{Type: "text", Text: "hello"}})
	require.NoError(t, err)
	drain(frags)

	msgs, err := store.Messages(sess.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, types.RoleUser, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Content)
	assert.Equal(t, types.RoleAssistant, msgs[1].Role)
	assert.False(t, msgs[1].Timestamp.Before(msgs[0].Timestamp))
}

func TestPromptFragmentsReassembleReply(t *testing.T) {
	ctrl, store := testController(t)
	sess := store.Create("stream")

	frags, err := ctrl.Prompt(context.Background(), sess.ID, []types.Part{{Type: "text", Text: "hi"}})
	require.NoError(t, err)
	all := drain(frags)
	require.NotEmpty(t, all)

	want := fmt.Sprintf(
		"I received your message: 'hi'. This is a mock AI response for testing purposes. The message was sent to session %s. ",
		sess.ID)
	var b strings.Builder
	for _, f := range all {
		b.WriteString(f.Content)
	}
	assert.Equal(t, want, b.String())

	msgs, err := store.Messages(sess.ID)
	require.NoError(t, err)
	for i, f := range all {
		assert.Equal(t, msgs[1].ID, f.ID, "fragment %d should carry the assistant message id", i)
		assert.Equal(t, types.RoleAssistant, f.Role)
		assert.Equal(t, i < len(all)-1, f.IsChunk, "fragment %d is_chunk", i)
	}
}

func TestPromptUnknownSession(t *testing.T) {
	ctrl, _ := testController(t)
	_, err := ctrl.Prompt(context.Background(), "missing", []types.Part{{Type: "text", Text: "hi"}})
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestPromptNilParts(t *testing.T) {
	ctrl, store := testController(t)
	sess := store.Create("invalid")
	_, err := ctrl.Prompt(context.Background(), sess.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPromptSkipsNonTextParts(t *testing.T) {
	ctrl, store := testController(t)
	sess := store.Create("mixed")

	frags, err := ctrl.Prompt(context.Background(), sess.ID, []types.Part{
		{Type: "image", Text: "ignored"},
		{Type: "text", Text: "kept"},
	})
	require.NoError(t, err)
	drain(frags)

	msgs, err := store.Messages(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", msgs[0].Content)
}

func TestPromptEmptyPartsIsValid(t *testing.T) {
	ctrl, store := testController(t)
	sess := store.Create("empty")

	frags, err := ctrl.Prompt(context.Background(), sess.ID, []types.Part{})
	require.NoError(t, err)
	all := drain(frags)
	assert.NotEmpty(t, all)

	msgs, err := store.Messages(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "", msgs[0].Content)
}
