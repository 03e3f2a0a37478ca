package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBloodTypeValid(t *testing.T) {
	for _, bt := range BloodTypes {
		assert.True(t, bt.Valid(), "expected %q to be valid", bt)
	}
	assert.False(t, BloodType("C+").Valid())
	assert.False(t, BloodType("o+").Valid())
	assert.False(t, BloodType("").Valid())
}

func TestUrgencyRankOrder(t *testing.T) {
	assert.Greater(t, UrgencyCritical.Rank(), UrgencyHigh.Rank())
	assert.Greater(t, UrgencyHigh.Rank(), UrgencyMedium.Rank())
	assert.Equal(t, 0, Urgency("urgent").Rank())
	assert.False(t, Urgency("urgent").Valid())
}

func TestValidExpiryHours(t *testing.T) {
	for _, h := range AllowedExpiryHours {
		assert.True(t, ValidExpiryHours(h))
	}
	assert.False(t, ValidExpiryHours(5))
	assert.False(t, ValidExpiryHours(0))
	assert.False(t, ValidExpiryHours(-24))
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	r := EmergencyRequest{Status: StatusActive, ExpiryTime: now.Add(time.Minute)}
	assert.Equal(t, StatusActive, r.EffectiveStatus(now))

	r.ExpiryTime = now.Add(-time.Minute)
	assert.Equal(t, StatusExpired, r.EffectiveStatus(now))

	// A request expiring exactly now is not yet past its expiry.
	r.ExpiryTime = now
	assert.Equal(t, StatusActive, r.EffectiveStatus(now))

	// Fulfilled stays fulfilled even past the expiry window.
	r.Status = StatusFulfilled
	r.ExpiryTime = now.Add(-time.Hour)
	assert.Equal(t, StatusFulfilled, r.EffectiveStatus(now))
}

func TestIsCode(t *testing.T) {
	err := NewInvalidExpiryError(5)
	assert.True(t, IsCode(err, CodeInvalidExpiry))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(nil, CodeNotFound))
}
