package ports

import "context"

// EventPublisher notifies other instances about authentication lifecycle
// events. Publish failures must never fail the originating request.
type EventPublisher interface {
	PublishLogin(ctx context.Context, userID, wallet string) error
	PublishLogout(ctx context.Context, userID, wallet string) error
}
