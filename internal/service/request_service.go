// Package service implements the emergency request lifecycle: creation with
// computed expiry, status transitions, and expiry sweeps.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"thalanet/internal/middleware"
	"thalanet/internal/models"
	"thalanet/internal/notifications"
	"thalanet/internal/observability"
	"thalanet/internal/query"
	"thalanet/internal/repository"

	"github.com/google/uuid"
)

// CreateRequestInput is the payload for submitting a new emergency request.
type CreateRequestInput struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	BloodType      string `json:"bloodType"`
	Location       string `json:"location"`
	RequesterName  string `json:"requesterName"`
	RequesterPhone string `json:"requesterPhone"`
	Hospital       string `json:"hospital"`
	Urgency        string `json:"urgency"`
	ExpiryHours    int    `json:"expiryHours"`
}

// RequestService orchestrates the emergency request lifecycle. It is the only
// component that computes expiry times and inserts into the store.
type RequestService struct {
	store      repository.RequestStore
	dispatcher notifications.Dispatcher
	now        func() time.Time
}

// NewRequestService creates a new request service. dispatcher may be nil when
// no notification collaborator is wired.
func NewRequestService(store repository.RequestStore, dispatcher notifications.Dispatcher) *RequestService {
	return &RequestService{
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Submit validates the input, computes the expiry window, and stores the
// request. Downstream notification is dispatched off the critical path; its
// failure never fails the submission.
func (s *RequestService) Submit(ctx context.Context, in CreateRequestInput) (*models.EmergencyRequest, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.RequesterName = strings.TrimSpace(in.RequesterName)

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if in.Location == "" {
		return nil, models.NewValidationError("Location is required")
	}
	if in.RequesterName == "" {
		return nil, models.NewValidationError("Requester name is required")
	}

	bloodType := models.BloodType(in.BloodType)
	if !bloodType.Valid() {
		return nil, models.NewValidationError("Invalid blood type")
	}
	urgency := models.Urgency(in.Urgency)
	if !urgency.Valid() {
		return nil, models.NewValidationError("Invalid urgency level")
	}
	if !models.ValidExpiryHours(in.ExpiryHours) {
		return nil, models.NewInvalidExpiryError(in.ExpiryHours)
	}

	now := s.now().UTC()
	req := &models.EmergencyRequest{
		PublicID:       uuid.NewString(),
		Title:          in.Title,
		Description:    in.Description,
		BloodType:      bloodType,
		Location:       in.Location,
		RequesterName:  in.RequesterName,
		RequesterPhone: strings.TrimSpace(in.RequesterPhone),
		Hospital:       strings.TrimSpace(in.Hospital),
		Urgency:        urgency,
		Status:         models.StatusActive,
		CreatedAt:      now,
		ExpiryTime:     now.Add(time.Duration(in.ExpiryHours) * time.Hour),
	}

	if err := s.store.Create(ctx, req); err != nil {
		return nil, err
	}

	observability.RequestsSubmitted.WithLabelValues(string(urgency), string(bloodType)).Inc()
	s.dispatch(req)

	return req, nil
}

// dispatch hands the request to the notification collaborator without
// blocking the caller.
func (s *RequestService) dispatch(req *models.EmergencyRequest) {
	if s.dispatcher == nil {
		return
	}
	go func(r models.EmergencyRequest) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.dispatcher.Notify(ctx, &r); err != nil {
			middleware.Logger.Warn("alert dispatch failed",
				slog.Uint64("request_id", uint64(r.ID)),
				slog.String("error", err.Error()),
			)
		}
	}(*req)
}

// Get returns a request by id. The returned copy carries the effective
// status: a request past its expiry reads as expired even if no sweep has
// updated the stored row yet.
func (s *RequestService) Get(ctx context.Context, id uint) (*models.EmergencyRequest, error) {
	req, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := *req
	view.Status = view.EffectiveStatus(s.now().UTC())
	return &view, nil
}

// List returns the active requests matching the filter, ranked by urgency and
// imminence of expiry.
func (s *RequestService) List(ctx context.Context, f query.FilterSpec) ([]models.EmergencyRequest, error) {
	snapshot, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return query.ActiveRequests(snapshot, f, s.now().UTC()), nil
}

// MarkFulfilled transitions an active request to fulfilled. A request whose
// expiry has already passed is treated as expired: the transition is rejected
// and the stored row is lazily swept.
func (s *RequestService) MarkFulfilled(ctx context.Context, id uint) (*models.EmergencyRequest, error) {
	req, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if req.Status == models.StatusActive && req.ExpiredBy(now) {
		if _, err := s.store.SetStatus(ctx, id, models.StatusExpired); err != nil {
			middleware.Logger.Warn("lazy expiry sweep failed",
				slog.Uint64("request_id", uint64(id)),
				slog.String("error", err.Error()),
			)
		}
		return nil, models.NewInvalidTransitionError(models.StatusExpired, models.StatusFulfilled)
	}

	updated, err := s.store.SetStatus(ctx, id, models.StatusFulfilled)
	if err != nil {
		return nil, err
	}
	observability.RequestsFulfilled.Inc()
	return updated, nil
}

// SweepExpired transitions all overdue active requests to expired and returns
// the number of rows changed. Storage hygiene only; reads are correct without
// it because the query engine applies the derived-expiry rule itself.
func (s *RequestService) SweepExpired(ctx context.Context) (int64, error) {
	count, err := s.store.SweepExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if count > 0 {
		observability.RequestsSwept.Add(float64(count))
	}
	return count, nil
}

// Purge hard-deletes a request. Administrative use only.
func (s *RequestService) Purge(ctx context.Context, id uint) error {
	return s.store.Purge(ctx, id)
}
