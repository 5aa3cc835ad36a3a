package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/fanbase/gatehouse/ports"
)

const (
	LoginTopic  = "gatehouse.login"
	LogoutTopic = "gatehouse.logout"
)

// AuthEvent is the payload published on login and logout.
type AuthEvent struct {
	UserID string    `json:"user_id"`
	Wallet string    `json:"wallet"`
	At     time.Time `json:"at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishLogin publishes a login event.
func (p *WatermillPublisher) PublishLogin(ctx context.Context, userID, wallet string) error {
	return p.publish(LoginTopic, userID, wallet)
}

// PublishLogout publishes a logout event.
func (p *WatermillPublisher) PublishLogout(ctx context.Context, userID, wallet string) error {
	return p.publish(LogoutTopic, userID, wallet)
}

func (p *WatermillPublisher) publish(topic, userID, wallet string) error {
	event := AuthEvent{
		UserID: userID,
		Wallet: wallet,
		At:     time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
