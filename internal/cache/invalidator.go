package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// EventsChannel carries booking-change events for subscribers that mirror
// profile views (mobile clients, edge caches).
const EventsChannel = "booking.events"

type bookingEvent struct {
	ModelID string `json:"model_id"`
	UserID  string `json:"user_id"`
}

// Invalidator drops cached profile views and publishes a change event
// whenever a booking mutates. Best effort: redis failures are logged, never
// surfaced to the lifecycle operation that triggered them.
type Invalidator struct {
	rdb *redis.Client
}

func NewInvalidator(rdb *redis.Client) *Invalidator {
	return &Invalidator{rdb: rdb}
}

func (i *Invalidator) BookingChanged(ctx context.Context, modelID, userID string) {
	if i == nil || i.rdb == nil {
		return
	}
	keys := []string{
		fmt.Sprintf("profile:model:%s:bookings", modelID),
		fmt.Sprintf("profile:user:%s:bookings", userID),
	}
	if err := i.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: failed to invalidate booking views: %v", err)
	}
	payload, err := json.Marshal(bookingEvent{ModelID: modelID, UserID: userID})
	if err != nil {
		return
	}
	if err := i.rdb.Publish(ctx, EventsChannel, payload).Err(); err != nil {
		log.Printf("cache: failed to publish booking event: %v", err)
	}
}
