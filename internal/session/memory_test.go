package session

import (
	"testing"
	"time"

	"github.com/ferg-cod3s/opencode-nexus/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignsFreshIDs(t *testing.T) {
	s := NewMemoryStore()

	a := s.Create("First")
	b := s.Create("Second")

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "First", a.Title)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestCreateDefaultsTitle(t *testing.T) {
	s := NewMemoryStore()
	sess := s.Create("")
	assert.Equal(t, "New Chat Session", sess.Title)
}

func TestGetUnknownSession(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendUnknownSession(t *testing.T) {
	s := NewMemoryStore()
	err := s.Append("nope", types.Message{Content: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessagesUnknownSession(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Messages("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMessagesPreserveInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	sess := s.Create("ordered")

	for _, content := range []string{"one", "two", "three"} {
		require.NoError(t, s.Append(sess.ID, types.Message{
			Role:      types.RoleUser,
			Content:   content,
			Timestamp: time.Now(),
		}))
	}

	msgs, err := s.Messages(sess.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "two", msgs[1].Content)
	assert.Equal(t, "three", msgs[2].Content)
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	sess := s.Create("copy")
	require.NoError(t, s.Append(sess.ID, types.Message{Content: "original"}))

	msgs, err := s.Messages(sess.ID)
	require.NoError(t, err)
	msgs[0].Content = "mutated"

	again, err := s.Messages(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Content)
}

func TestListReturnsMetadataInCreationOrder(t *testing.T) {
	s := NewMemoryStore()
	a := s.Create("a")
	b := s.Create("b")

	sessions := s.List()
	require.Len(t, sessions, 2)
	assert.Equal(t, a.ID, sessions[0].ID)
	assert.Equal(t, b.ID, sessions[1].ID)
}
