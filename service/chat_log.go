package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fanbase/gatehouse/core"
)

// ChatLog is an in-memory message feed, a consumer of the authorization
// gate open to every authenticated role.
type ChatLog struct {
	mu       sync.RWMutex
	messages []core.Message
}

// NewChatLog creates an empty chat log.
func NewChatLog() *ChatLog {
	return &ChatLog{}
}

// List returns all messages in posting order.
func (c *ChatLog) List() []core.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	messages := make([]core.Message, len(c.messages))
	copy(messages, c.messages)
	return messages
}

// Post appends a message authored by authorID.
func (c *ChatLog) Post(authorID, body string) core.Message {
	msg := core.Message{
		ID:       uuid.New().String(),
		AuthorID: authorID,
		Body:     body,
		SentAt:   time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)

	return msg
}
