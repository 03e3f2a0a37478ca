// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// BloodType is one of the eight ABO/Rh blood categories.
type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

// BloodTypes lists all valid blood type values.
var BloodTypes = []BloodType{
	BloodTypeAPos, BloodTypeANeg,
	BloodTypeBPos, BloodTypeBNeg,
	BloodTypeABPos, BloodTypeABNeg,
	BloodTypeOPos, BloodTypeONeg,
}

// Valid reports whether b is one of the eight ABO/Rh categories.
func (b BloodType) Valid() bool {
	for _, v := range BloodTypes {
		if b == v {
			return true
		}
	}
	return false
}

// Urgency is the priority level of an emergency request.
// The order is total: critical > high > medium.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
)

// Valid reports whether u is a known urgency level.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyCritical, UrgencyHigh, UrgencyMedium:
		return true
	}
	return false
}

// Rank returns the sort weight of the urgency; higher is more urgent.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 3
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 1
	}
	return 0
}

// RequestStatus is the stored lifecycle state of an emergency request.
// Transitions are monotonic: once fulfilled or expired a request never
// returns to active.
type RequestStatus string

const (
	StatusActive    RequestStatus = "active"
	StatusFulfilled RequestStatus = "fulfilled"
	StatusExpired   RequestStatus = "expired"
)

// AllowedExpiryHours is the fixed set of expiry windows a requester may choose.
var AllowedExpiryHours = []int{2, 4, 8, 12, 24, 48, 72, 120}

// ValidExpiryHours reports whether hours is one of AllowedExpiryHours.
func ValidExpiryHours(hours int) bool {
	for _, h := range AllowedExpiryHours {
		if hours == h {
			return true
		}
	}
	return false
}

// EmergencyRequest is a blood request posted to the emergency board.
type EmergencyRequest struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	PublicID       string         `gorm:"size:36;uniqueIndex;not null" json:"publicId"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text;not null" json:"description"`
	BloodType      BloodType      `gorm:"size:3;not null;index" json:"bloodType"`
	Location       string         `gorm:"not null;index" json:"location"`
	RequesterName  string         `gorm:"not null" json:"requesterName"`
	RequesterPhone string         `json:"requesterPhone"`
	Hospital       string         `json:"hospital"`
	Urgency        Urgency        `gorm:"size:8;not null;index" json:"urgency"`
	Status         RequestStatus  `gorm:"size:9;not null;default:active;index" json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"-"`
	ExpiryTime     time.Time      `gorm:"not null;index" json:"expiryTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// ExpiredBy reports whether the request's expiry has passed at the given time.
func (r *EmergencyRequest) ExpiredBy(now time.Time) bool {
	return now.After(r.ExpiryTime)
}

// EffectiveStatus returns the status for read purposes at the given time.
// Derived expiry dominates the stored value: a request past its expiry
// reads as expired even before a sweep has updated the row.
func (r *EmergencyRequest) EffectiveStatus(now time.Time) RequestStatus {
	if r.Status == StatusActive && r.ExpiredBy(now) {
		return StatusExpired
	}
	return r.Status
}
