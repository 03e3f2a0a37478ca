// Package seed provides helpers to create demo emergency requests for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"thalanet/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder builds demo emergency requests and persists them to the database.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var urgencies = []models.Urgency{
	models.UrgencyCritical,
	models.UrgencyHigh,
	models.UrgencyMedium,
}

var hospitals = []string{
	"Government General Hospital",
	"Apollo Speciality",
	"CMC Vellore",
	"KMC Manipal",
	"AIIMS",
	"St. John's Medical College",
}

// BuildRequest constructs an emergency request without persisting it.
// Optional override functions may modify the generated request.
func (s *Seeder) BuildRequest(overrides ...func(*models.EmergencyRequest)) *models.EmergencyRequest {
	bloodType := models.BloodTypes[s.rng.Intn(len(models.BloodTypes))]
	urgency := urgencies[s.rng.Intn(len(urgencies))]
	hours := models.AllowedExpiryHours[s.rng.Intn(len(models.AllowedExpiryHours))]

	// Spread creation times back over the past day so boards look lived-in.
	createdAt := time.Now().UTC().Add(-time.Duration(s.rng.Intn(24*60)) * time.Minute)

	req := &models.EmergencyRequest{
		PublicID:       uuid.NewString(),
		Title:          fmt.Sprintf("%s blood needed at %s", bloodType, gofakeit.City()),
		Description:    gofakeit.Paragraph(1, 2, 8, " "),
		BloodType:      bloodType,
		Location:       gofakeit.City(),
		RequesterName:  gofakeit.Name(),
		RequesterPhone: gofakeit.Phone(),
		Hospital:       hospitals[s.rng.Intn(len(hospitals))],
		Urgency:        urgency,
		Status:         models.StatusActive,
		CreatedAt:      createdAt,
		ExpiryTime:     createdAt.Add(time.Duration(hours) * time.Hour),
	}

	for _, override := range overrides {
		override(req)
	}
	return req
}

// SeedRequests persists n generated requests in a single batch.
func (s *Seeder) SeedRequests(n int) ([]*models.EmergencyRequest, error) {
	if n <= 0 {
		return nil, nil
	}
	requests := make([]*models.EmergencyRequest, 0, n)
	for i := 0; i < n; i++ {
		requests = append(requests, s.BuildRequest())
	}
	if err := s.db.Create(&requests).Error; err != nil {
		return nil, fmt.Errorf("seed requests: %w", err)
	}
	return requests, nil
}

// ClearAll removes every emergency request, including soft-deleted rows.
func (s *Seeder) ClearAll() error {
	return s.db.Unscoped().Where("1 = 1").Delete(&models.EmergencyRequest{}).Error
}
