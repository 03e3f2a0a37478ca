// Package notifications publishes emergency alerts to downstream delivery
// collaborators. Publication is the boundary of this service: SMS, email, or
// push delivery is someone else's pipeline, subscribed to these channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"thalanet/internal/models"
	"thalanet/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	// BroadcastChannel carries every accepted emergency request.
	BroadcastChannel = "alerts:requests"
	// bloodTypeChannel carries requests for a single blood type, so donor
	// notifiers can subscribe narrowly.
	bloodTypeChannelFormat = "alerts:requests:%s"
)

// Dispatcher notifies downstream collaborators about accepted requests.
// Implementations must be safe to call fire-and-forget: a dispatch failure
// never fails the submission that triggered it.
type Dispatcher interface {
	Notify(ctx context.Context, req *models.EmergencyRequest) error
}

// Alert is the published wire payload.
type Alert struct {
	RequestID  uint             `json:"requestId"`
	PublicID   string           `json:"publicId"`
	Title      string           `json:"title"`
	BloodType  models.BloodType `json:"bloodType"`
	Urgency    models.Urgency   `json:"urgency"`
	Location   string           `json:"location"`
	Hospital   string           `json:"hospital"`
	ExpiryTime time.Time        `json:"expiryTime"`
}

// RedisDispatcher publishes alerts to Redis pub/sub channels.
type RedisDispatcher struct {
	rdb *redis.Client
}

// NewRedisDispatcher creates a dispatcher over the given Redis client.
// A nil client yields a dispatcher that drops every alert, which keeps
// submission working in environments without Redis.
func NewRedisDispatcher(rdb *redis.Client) *RedisDispatcher {
	return &RedisDispatcher{rdb: rdb}
}

// BloodTypeChannel returns the per-blood-type alert channel name.
func BloodTypeChannel(bt models.BloodType) string {
	return fmt.Sprintf(bloodTypeChannelFormat, bt)
}

// Notify publishes the request to the broadcast channel and to its
// blood-type channel.
func (d *RedisDispatcher) Notify(ctx context.Context, req *models.EmergencyRequest) error {
	if d.rdb == nil {
		return nil
	}

	alert := Alert{
		RequestID:  req.ID,
		PublicID:   req.PublicID,
		Title:      req.Title,
		BloodType:  req.BloodType,
		Urgency:    req.Urgency,
		Location:   req.Location,
		Hospital:   req.Hospital,
		ExpiryTime: req.ExpiryTime,
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	if err := d.rdb.Publish(ctx, BroadcastChannel, payload).Err(); err != nil {
		return err
	}
	observability.AlertsPublished.WithLabelValues(BroadcastChannel).Inc()

	channel := BloodTypeChannel(req.BloodType)
	if err := d.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return err
	}
	observability.AlertsPublished.WithLabelValues(channel).Inc()

	return nil
}
