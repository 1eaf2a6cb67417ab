package types

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session is a named conversation context. Messages are stored separately
// and retrieved by session id; listing sessions returns metadata only.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one turn in a conversation. Immutable once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Part is one piece of a prompt body. Only text parts contribute to the
// user message; other types are ignored.
type Part struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Fragment is one streamed piece of an assistant reply. All fragments of a
// reply share the id of the stored assistant message; IsChunk is true until
// the final fragment.
type Fragment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`
	IsChunk   bool      `json:"is_chunk"`
}
