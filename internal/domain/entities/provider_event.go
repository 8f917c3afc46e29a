package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProviderEventType represents the type of provider event
type ProviderEventType string

const (
	ProviderEventTypeUpdated         ProviderEventType = "provider_updated"
	ProviderEventTypeReviewSubmitted ProviderEventType = "review_submitted"
)

// ProviderEvent announces a change that makes cached provider data stale
type ProviderEvent struct {
	ID         string            `json:"id"`
	ProviderID string            `json:"provider_id"`
	EventType  ProviderEventType `json:"event_type"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewProviderEvent creates a new provider event
func NewProviderEvent(providerID string, eventType ProviderEventType) *ProviderEvent {
	return &ProviderEvent{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		EventType:  eventType,
		Timestamp:  time.Now().UTC(),
	}
}
