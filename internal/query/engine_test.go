package query

import (
	"testing"
	"time"

	"thalanet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func activeRequest(id uint, urgency models.Urgency, expiresIn time.Duration) models.EmergencyRequest {
	return models.EmergencyRequest{
		ID:         id,
		Title:      "Need blood",
		BloodType:  models.BloodTypeOPos,
		Location:   "Chennai",
		Urgency:    urgency,
		Status:     models.StatusActive,
		CreatedAt:  testNow.Add(-time.Hour),
		ExpiryTime: testNow.Add(expiresIn),
	}
}

func TestActiveRequests_Ordering(t *testing.T) {
	r1 := activeRequest(1, models.UrgencyCritical, time.Hour)
	r2 := activeRequest(2, models.UrgencyHigh, 30*time.Minute)
	r3 := activeRequest(3, models.UrgencyCritical, 2*time.Hour)

	got := ActiveRequests([]models.EmergencyRequest{r2, r3, r1}, FilterSpec{}, testNow)

	require.Len(t, got, 3)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(3), got[1].ID)
	assert.Equal(t, uint(2), got[2].ID)
}

func TestActiveRequests_TieBreakByID(t *testing.T) {
	a := activeRequest(9, models.UrgencyHigh, time.Hour)
	b := activeRequest(4, models.UrgencyHigh, time.Hour)

	got := ActiveRequests([]models.EmergencyRequest{a, b}, FilterSpec{}, testNow)

	require.Len(t, got, 2)
	assert.Equal(t, uint(4), got[0].ID)
	assert.Equal(t, uint(9), got[1].ID)
}

func TestActiveRequests_ExcludesDerivedExpired(t *testing.T) {
	live := activeRequest(1, models.UrgencyMedium, time.Minute)
	// Stored status is still active but the expiry has passed; the sweep has
	// not run. The engine must exclude it anyway.
	stale := activeRequest(2, models.UrgencyCritical, -time.Minute)

	got := ActiveRequests([]models.EmergencyRequest{live, stale}, FilterSpec{}, testNow)

	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestActiveRequests_ExcludesFulfilledAndExpired(t *testing.T) {
	fulfilled := activeRequest(1, models.UrgencyCritical, time.Hour)
	fulfilled.Status = models.StatusFulfilled
	expired := activeRequest(2, models.UrgencyCritical, time.Hour)
	expired.Status = models.StatusExpired
	live := activeRequest(3, models.UrgencyMedium, time.Hour)

	got := ActiveRequests([]models.EmergencyRequest{fulfilled, expired, live}, FilterSpec{}, testNow)

	require.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].ID)
}

func TestActiveRequests_Filters(t *testing.T) {
	oPos := activeRequest(1, models.UrgencyHigh, time.Hour)
	aNeg := activeRequest(2, models.UrgencyHigh, time.Hour)
	aNeg.BloodType = models.BloodTypeANeg
	aNeg.Location = "Mumbai"
	medium := activeRequest(3, models.UrgencyMedium, time.Hour)

	snapshot := []models.EmergencyRequest{oPos, aNeg, medium}

	tests := []struct {
		name    string
		filter  FilterSpec
		wantIDs []uint
	}{
		{"no constraints", FilterSpec{}, []uint{1, 2, 3}},
		{"all keyword means no constraint", FilterSpec{Urgency: "all", BloodType: "all", Location: "all"}, []uint{1, 2, 3}},
		{"by urgency", FilterSpec{Urgency: "medium"}, []uint{3}},
		{"by blood type", FilterSpec{BloodType: "A-"}, []uint{2}},
		{"by location", FilterSpec{Location: "Mumbai"}, []uint{2}},
		{"location is case-sensitive", FilterSpec{Location: "mumbai"}, nil},
		{"combined", FilterSpec{Urgency: "high", BloodType: "O+", Location: "Chennai"}, []uint{1}},
		{"no blood type match yields empty, not error", FilterSpec{BloodType: "AB-"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveRequests(snapshot, tt.filter, testNow)
			var ids []uint
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestActiveRequests_EmptySnapshot(t *testing.T) {
	got := ActiveRequests(nil, FilterSpec{}, testNow)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
