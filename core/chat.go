package core

import "time"

// Message is a chat message on the creator feed. Chat is a consumer of the
// authorization gate: any authenticated role may read and post.
type Message struct {
	ID       string    `json:"id"`
	AuthorID string    `json:"authorId"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

// Group is a moderation group. Group management is Admin-only.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}
