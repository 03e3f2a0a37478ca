// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"thalanet/internal/cache"
	"thalanet/internal/models"

	"gorm.io/gorm"
)

// RequestStore is the authoritative collection of emergency requests.
// Callers receive copies; the store owns the rows and is the only place
// the monotonic status machine is written.
type RequestStore interface {
	Create(ctx context.Context, req *models.EmergencyRequest) error
	GetByID(ctx context.Context, id uint) (*models.EmergencyRequest, error)
	SetStatus(ctx context.Context, id uint, status models.RequestStatus) (*models.EmergencyRequest, error)
	All(ctx context.Context) ([]models.EmergencyRequest, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
	Purge(ctx context.Context, id uint) error
}

// requestStore implements RequestStore on GORM.
type requestStore struct {
	db *gorm.DB
}

// NewRequestStore creates a new request store backed by the given database.
func NewRequestStore(db *gorm.DB) RequestStore {
	return &requestStore{db: db}
}

func (r *requestStore) Create(ctx context.Context, req *models.EmergencyRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A public ID collision means the id generator is broken, not
			// that the caller did anything wrong.
			return models.NewInternalError(err)
		}
		return err
	}
	cache.InvalidateRequestsList(ctx)
	return nil
}

func (r *requestStore) GetByID(ctx context.Context, id uint) (*models.EmergencyRequest, error) {
	var req models.EmergencyRequest
	err := cache.Aside(ctx, cache.RequestKey(id), &req, cache.RequestTTL, func() error {
		return r.db.WithContext(ctx).First(&req, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("emergency request", id)
		}
		return nil, err
	}
	return &req, nil
}

// SetStatus transitions a request out of the active state. The write is a
// conditional UPDATE keyed on the current status, so concurrent transitions
// against the same row serialize at the database and the monotonic-status
// invariant holds without a separate lock.
func (r *requestStore) SetStatus(ctx context.Context, id uint, status models.RequestStatus) (*models.EmergencyRequest, error) {
	if status == models.StatusActive {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, models.NewInvalidTransitionError(current.Status, status)
	}

	res := r.db.WithContext(ctx).
		Model(&models.EmergencyRequest{}).
		Where("id = ? AND status = ?", id, models.StatusActive).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Distinguish a missing row from a terminal one.
		var current models.EmergencyRequest
		if err := r.db.WithContext(ctx).First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("emergency request", id)
			}
			return nil, err
		}
		return nil, models.NewInvalidTransitionError(current.Status, status)
	}

	cache.InvalidateRequest(ctx, id)
	cache.InvalidateRequestsList(ctx)

	var updated models.EmergencyRequest
	if err := r.db.WithContext(ctx).First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// All returns the full request snapshot, cache-aside on the board key. Caching
// the raw snapshot is safe: callers re-derive expiry against their own clock,
// so a cached row gone stale still reads as expired.
func (r *requestStore) All(ctx context.Context) ([]models.EmergencyRequest, error) {
	var requests []models.EmergencyRequest
	err := cache.Aside(ctx, cache.RequestsListKey, &requests, cache.ListTTL, func() error {
		return r.db.WithContext(ctx).Find(&requests).Error
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// SweepExpired transitions every active request whose expiry has passed to
// expired in a single UPDATE. Idempotent: a second call with no new
// expirations reports zero rows.
func (r *requestStore) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.EmergencyRequest{}).
		Where("status = ? AND expiry_time < ?", models.StatusActive, now).
		Update("status", models.StatusExpired)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		cache.InvalidateRequestsList(ctx)
	}
	return res.RowsAffected, nil
}

// Purge hard-deletes a request. Administrative use only; not routed to end users.
func (r *requestStore) Purge(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(&models.EmergencyRequest{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateRequest(ctx, id)
	cache.InvalidateRequestsList(ctx)
	return nil
}
