// Package query implements the read-side filtering and ranking of emergency
// requests. It is a pure function over an explicit snapshot so the same code
// path serves HTTP handlers, background jobs, and tests.
package query

import (
	"sort"
	"time"

	"thalanet/internal/models"
)

// All is the filter value meaning "no constraint" for a dimension.
// An empty string is treated the same way.
const All = "all"

// FilterSpec narrows the active request pool. Location matching is
// case-sensitive exact match; fuzzy or geospatial matching belongs to
// upstream collaborators.
type FilterSpec struct {
	Urgency   string `json:"urgency"`
	BloodType string `json:"bloodType"`
	Location  string `json:"location"`
}

func unconstrained(v string) bool {
	return v == "" || v == All
}

func (f FilterSpec) matches(r *models.EmergencyRequest) bool {
	if !unconstrained(f.Urgency) && string(r.Urgency) != f.Urgency {
		return false
	}
	if !unconstrained(f.BloodType) && string(r.BloodType) != f.BloodType {
		return false
	}
	if !unconstrained(f.Location) && r.Location != f.Location {
		return false
	}
	return true
}

// ActiveRequests returns the requests from snapshot that match the filter and
// are still live at now: stored status active and expiry not yet passed. The
// sweep is an optimization, not a correctness dependency; rows a sweep has not
// reached yet are excluded here by the derived-expiry rule.
//
// Ordering is the board's ranking policy: urgency descending (critical
// first), then soonest-expiring first, then id ascending for determinism.
func ActiveRequests(snapshot []models.EmergencyRequest, f FilterSpec, now time.Time) []models.EmergencyRequest {
	out := make([]models.EmergencyRequest, 0, len(snapshot))
	for i := range snapshot {
		r := snapshot[i]
		if r.Status != models.StatusActive || r.ExpiredBy(now) {
			continue
		}
		if !f.matches(&r) {
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if ri, rj := out[i].Urgency.Rank(), out[j].Urgency.Rank(); ri != rj {
			return ri > rj
		}
		if !out[i].ExpiryTime.Equal(out[j].ExpiryTime) {
			return out[i].ExpiryTime.Before(out[j].ExpiryTime)
		}
		return out[i].ID < out[j].ID
	})

	return out
}
