package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"thalanet/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDispatcher_Notify(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, BroadcastChannel, BloodTypeChannel(models.BloodTypeANeg))
	defer sub.Close()
	// Wait for both subscription confirmations before publishing.
	for i := 0; i < 2; i++ {
		_, err := sub.Receive(ctx)
		require.NoError(t, err)
	}

	d := NewRedisDispatcher(rdb)
	req := &models.EmergencyRequest{
		ID:         12,
		PublicID:   "5c9f7d1e-0000-4000-8000-000000000000",
		Title:      "A- platelets needed",
		BloodType:  models.BloodTypeANeg,
		Urgency:    models.UrgencyCritical,
		Location:   "Vellore",
		Hospital:   "CMC",
		ExpiryTime: time.Now().Add(4 * time.Hour).UTC(),
	}
	require.NoError(t, d.Notify(ctx, req))

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		msg, err := sub.ReceiveTimeout(ctx, 2*time.Second)
		require.NoError(t, err)
		m, ok := msg.(*redis.Message)
		require.True(t, ok, "expected a message, got %T", msg)

		var alert Alert
		require.NoError(t, json.Unmarshal([]byte(m.Payload), &alert))
		assert.Equal(t, uint(12), alert.RequestID)
		assert.Equal(t, models.BloodTypeANeg, alert.BloodType)
		assert.Equal(t, models.UrgencyCritical, alert.Urgency)
		seen[m.Channel] = true
	}

	assert.True(t, seen[BroadcastChannel])
	assert.True(t, seen[BloodTypeChannel(models.BloodTypeANeg)])
}

func TestRedisDispatcher_NilClientDropsAlert(t *testing.T) {
	d := NewRedisDispatcher(nil)
	err := d.Notify(context.Background(), &models.EmergencyRequest{ID: 1})
	assert.NoError(t, err)
}
