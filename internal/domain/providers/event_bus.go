package providers

import (
	"context"

	"github.com/zatekoja/doctorfinder/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ProviderEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ProviderEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelProviderUpdates carries every provider change
	EventChannelProviderUpdates = "provider:updates"

	// ProviderCacheKeyPrefix prefixes cached provider profiles
	ProviderCacheKeyPrefix = "provider:"
)

// GetProviderCacheKey returns the cache key of a provider profile
func GetProviderCacheKey(providerID string) string {
	return ProviderCacheKeyPrefix + providerID
}
